package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scriptoria-ai/auth-service/pkg/helpers"
	"github.com/scriptoria-ai/auth-service/pkg/response"
)

// TokenHandler exposes token introspection for the API gateway.
type TokenHandler struct {
	JWT *helpers.JWTManager
}

func NewTokenHandler(jwt *helpers.JWTManager) *TokenHandler {
	return &TokenHandler{JWT: jwt}
}

// Validate GET /validate-token
// On success the resolved user id is echoed in the X-User-Id header so the
// gateway can forward it as the identity assertion.
func (h *TokenHandler) Validate(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		response.Error(c, http.StatusUnauthorized, "missing bearer token", nil)
		return
	}
	sub, err := h.JWT.ParseAccessToken(strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid or expired token", nil)
		return
	}
	c.Header("X-User-Id", sub)
	response.Success(c, http.StatusOK, gin.H{"valid": true, "userId": sub}, "token valid")
}
