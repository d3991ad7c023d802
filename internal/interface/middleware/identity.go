package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/scriptoria-ai/auth-service/pkg/helpers"
	"github.com/scriptoria-ai/auth-service/pkg/response"
)

const (
	// CtxCallerIDKey holds the resolved caller UUID in the Gin context.
	CtxCallerIDKey = "callerID"

	// HeaderUserContext carries the identity assertion injected by the API
	// gateway after it has authenticated the caller. When present it is
	// trusted without re-verification.
	HeaderUserContext = "X-User-Context"
)

// Identity resolves the caller's identity: the gateway assertion header
// takes priority, a locally decoded bearer token is the fallback for
// development and direct calls. On success the caller UUID is stored in the
// context.
func Identity(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if assertion := c.GetHeader(HeaderUserContext); assertion != "" {
			id, err := uuid.Parse(assertion)
			if err != nil {
				response.AbortError(c, http.StatusUnauthorized, "malformed identity assertion", nil)
				return
			}
			c.Set(CtxCallerIDKey, id.String())
			c.Next()
			return
		}

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			response.AbortError(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		sub, err := jwt.ParseAccessToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		id, err := uuid.Parse(sub)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(CtxCallerIDKey, id.String())
		c.Next()
	}
}

// CallerID returns the caller UUID resolved by Identity.
func CallerID(c *gin.Context) string {
	return c.GetString(CtxCallerIDKey)
}
