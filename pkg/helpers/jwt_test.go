package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewJWTManagerRejectsNonHMAC(t *testing.T) {
	_, err := NewJWTManager("secret", "RS256", time.Minute)
	require.Error(t, err)

	_, err = NewJWTManager("secret", "nope", time.Minute)
	require.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m, err := NewJWTManager("secret", "HS256", time.Minute)
	require.NoError(t, err)

	token, exp, err := m.GenerateAccessToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	sub, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", sub)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m, err := NewJWTManager("secret", "HS256", -time.Minute)
	require.NoError(t, err)

	token, _, err := m.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	require.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer, err := NewJWTManager("secret-a", "HS256", time.Minute)
	require.NoError(t, err)
	verifier, err := NewJWTManager("secret-b", "HS256", time.Minute)
	require.NoError(t, err)

	token, _, err := signer.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(token)
	require.Error(t, err)
}

func TestParsePinsAlgorithm(t *testing.T) {
	hs512, err := NewJWTManager("secret", "HS512", time.Minute)
	require.NoError(t, err)
	hs256, err := NewJWTManager("secret", "HS256", time.Minute)
	require.NoError(t, err)

	token, _, err := hs512.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = hs256.ParseAccessToken(token)
	require.Error(t, err)
}

func TestParseRejectsMissingSubject(t *testing.T) {
	m, err := NewJWTManager("secret", "HS256", time.Minute)
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(m.Method, claims).SignedString(m.Secret)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	require.Error(t, err)
}
