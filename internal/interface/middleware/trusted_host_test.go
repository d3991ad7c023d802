package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func hostRouter(allowed []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TrustedHost(allowed))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func requestWithHost(host string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Host = host
	return req
}

func TestTrustedHostEmptyListAllowsAll(t *testing.T) {
	r := hostRouter(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, requestWithHost("anything.example.com"))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestTrustedHostExactMatch(t *testing.T) {
	r := hostRouter([]string{"api.example.com"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, requestWithHost("api.example.com"))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, requestWithHost("evil.example.com"))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrustedHostStripsPort(t *testing.T) {
	r := hostRouter([]string{"localhost"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, requestWithHost("localhost:8080"))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestTrustedHostWildcardSubdomain(t *testing.T) {
	r := hostRouter([]string{"*.example.com"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, requestWithHost("api.example.com"))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, requestWithHost("example.org"))
	require.Equal(t, http.StatusBadRequest, w.Code)
}
