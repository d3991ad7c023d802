package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	userapp "github.com/scriptoria-ai/auth-service/internal/application"
	"github.com/scriptoria-ai/auth-service/internal/domain/entity"
	"github.com/scriptoria-ai/auth-service/internal/domain/password"
	repo "github.com/scriptoria-ai/auth-service/internal/domain/repository"
	"github.com/scriptoria-ai/auth-service/internal/interface/middleware"
	"github.com/scriptoria-ai/auth-service/pkg/helpers"
	"github.com/scriptoria-ai/auth-service/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type fakeRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeRepo) Create(_ context.Context, u *entity.User) error {
	for _, e := range f.users {
		if e.Email.String() == u.Email.String() {
			return repo.ErrDuplicateEmail
		}
		if e.Username.String() == u.Username.String() {
			return repo.ErrDuplicateUsername
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email.String() == email {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username.String() == username {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type testAPI struct {
	router *gin.Engine
	jwt    *helpers.JWTManager
}

// newTestAPI wires the handlers the way the user module does, minus the
// Redis rate limiters.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	dictPath := filepath.Join(t.TempDir(), "common.csv")
	require.NoError(t, os.WriteFile(dictPath, []byte("0,123456\n1,Password1!\n"), 0o600))
	engine := password.NewEngine(password.LoadDictionary(dictPath, nil), bcrypt.MinCost)

	jwt, err := helpers.NewJWTManager("test-secret", "HS256", time.Minute)
	require.NoError(t, err)

	svc := userapp.NewService(newFakeRepo(), engine, jwt, nil)
	uh := NewUserHandler(svc, nil)
	th := NewTokenHandler(jwt)

	r := gin.New()
	r.POST("/register", uh.Register)
	r.POST("/login", uh.Login)
	r.GET("/validate-token", th.Validate)
	users := r.Group("/users", middleware.Identity(jwt))
	users.GET("/:id", uh.Get)
	users.PUT("/:id", uh.Update)
	users.DELETE("/:id", uh.Delete)

	return &testAPI{router: r, jwt: jwt}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func registerBody() gin.H {
	return gin.H{
		"username":        "alice1",
		"email":           "alice@example.com",
		"password":        "Abcdef12",
		"confirmPassword": "Abcdef12",
		"age":             25,
		"environment":     "casa",
		"educationLevel":  "licenciatura",
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// register creates a user and returns its id.
func (a *testAPI) register(t *testing.T) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		UserID string `json:"userId"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.UserID)
	return data.UserID
}

func TestRegisterEndpoint(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodPost, "/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	require.Contains(t, string(env.Data), "alice@example.com")
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	api := newTestAPI(t)
	body := registerBody()
	body["password"] = "alllowercase"
	body["confirmPassword"] = "alllowercase"

	w := api.do(t, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "password")
}

func TestRegisterRejectsMismatchedConfirmation(t *testing.T) {
	api := newTestAPI(t)
	body := registerBody()
	body["confirmPassword"] = "Different1"

	w := api.do(t, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "confirmPassword")
}

func TestRegisterRejectsUnknownEnvironment(t *testing.T) {
	api := newTestAPI(t)
	body := registerBody()
	body["environment"] = "moon_base"

	w := api.do(t, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRejectsCommonPassword(t *testing.T) {
	api := newTestAPI(t)
	body := registerBody()
	body["password"] = "Password1!"
	body["confirmPassword"] = "Password1!"

	w := api.do(t, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "too common")
}

func TestRegisterDuplicateEmailEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.register(t)

	body := registerBody()
	body["username"] = "bob123"
	w := api.do(t, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "email already in use")
}

func TestLoginAndValidateToken(t *testing.T) {
	api := newTestAPI(t)
	id := api.register(t)

	w := api.do(t, http.MethodPost, "/login", gin.H{"email": "alice@example.com", "password": "Abcdef12"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "bearer", data.TokenType)

	w = api.do(t, http.MethodGet, "/validate-token", nil, map[string]string{
		"Authorization": "Bearer " + data.AccessToken,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, id, w.Header().Get("X-User-Id"))
}

func TestLoginFailuresShareAMessage(t *testing.T) {
	api := newTestAPI(t)
	api.register(t)

	wrong := api.do(t, http.MethodPost, "/login", gin.H{"email": "alice@example.com", "password": "WrongPass1"}, nil)
	unknown := api.do(t, http.MethodPost, "/login", gin.H{"email": "nobody@example.com", "password": "Abcdef12"}, nil)

	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, decodeEnvelope(t, wrong).Message, decodeEnvelope(t, unknown).Message)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/validate-token", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodGet, "/validate-token", nil, map[string]string{"Authorization": "Bearer garbage"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetRequiresIdentity(t *testing.T) {
	api := newTestAPI(t)
	id := api.register(t)

	w := api.do(t, http.MethodGet, "/users/"+id, nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetSelf(t *testing.T) {
	api := newTestAPI(t)
	id := api.register(t)

	w := api.do(t, http.MethodGet, "/users/"+id, nil, map[string]string{
		middleware.HeaderUserContext: id,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data userDetailResponse
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "alice1", data.Username)
	require.Equal(t, "alumno", data.Profile.Role)
	require.Equal(t, "casa", data.Profile.Environment)
}

func TestGetOtherUserForbidden(t *testing.T) {
	api := newTestAPI(t)
	id := api.register(t)

	// 403 regardless of whether the target exists.
	w := api.do(t, http.MethodGet, "/users/"+uuid.NewString(), nil, map[string]string{
		middleware.HeaderUserContext: id,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetMalformedID(t *testing.T) {
	api := newTestAPI(t)
	id := api.register(t)

	w := api.do(t, http.MethodGet, "/users/not-a-uuid", nil, map[string]string{
		middleware.HeaderUserContext: id,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSelf(t *testing.T) {
	api := newTestAPI(t)
	id := api.register(t)

	w := api.do(t, http.MethodPut, "/users/"+id, gin.H{"age": 30, "educationLevel": "maestria"}, map[string]string{
		middleware.HeaderUserContext: id,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data userDetailResponse
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, 30, data.Age)
	require.Equal(t, "maestria", data.Profile.EducationLevel)
}

func TestUpdateWithNoFields(t *testing.T) {
	api := newTestAPI(t)
	id := api.register(t)

	w := api.do(t, http.MethodPut, "/users/"+id, gin.H{}, map[string]string{
		middleware.HeaderUserContext: id,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "no fields to update")
}

func TestUpdateRejectsMinorAgeEndpoint(t *testing.T) {
	api := newTestAPI(t)
	id := api.register(t)

	w := api.do(t, http.MethodPut, "/users/"+id, gin.H{"age": 17}, map[string]string{
		middleware.HeaderUserContext: id,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSelfThenGone(t *testing.T) {
	api := newTestAPI(t)
	id := api.register(t)
	headers := map[string]string{middleware.HeaderUserContext: id}

	w := api.do(t, http.MethodDelete, "/users/"+id, nil, headers)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(t, http.MethodGet, "/users/"+id, nil, headers)
	require.Equal(t, http.StatusNotFound, w.Code)
}
