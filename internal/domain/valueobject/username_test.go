package valueobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUsernameAcceptsValidNames(t *testing.T) {
	for _, raw := range []string{
		"alice1",
		"bob",
		"a_b-c",
		"User2024",
	} {
		name, err := NewUsername(raw)
		require.NoError(t, err, "username %q", raw)
		require.Equal(t, raw, name.String())
	}
}

func TestNewUsernameTrimsWhitespace(t *testing.T) {
	name, err := NewUsername("  alice1  ")
	require.NoError(t, err)
	require.Equal(t, "alice1", name.String())
}

func TestNewUsernameRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind ErrorKind
	}{
		{"too short", "ab", KindTooShort},
		{"too long", strings.Repeat("a", 31), KindTooLong},
		{"embedded space", "a b c", KindContainsSpaces},
		{"symbol", "ali$ce", KindInvalidCharset},
		{"accented letter", "alicé1", KindInvalidCharset},
		{"leading dash", "-alice", KindInvalidBoundary},
		{"leading underscore", "_alice", KindInvalidBoundary},
		{"trailing dash", "alice-", KindInvalidBoundary},
		{"trailing underscore", "alice_", KindInvalidBoundary},
		{"all digits", "123456", KindAllDigits},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUsername(tc.raw)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.kind, verr.Kind)
			require.Equal(t, "username", verr.Field)
		})
	}
}
