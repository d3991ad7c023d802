package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scriptoria-ai/auth-service/internal/container"
	handlers "github.com/scriptoria-ai/auth-service/internal/interface/http"
	"github.com/scriptoria-ai/auth-service/internal/interface/middleware"
	"github.com/scriptoria-ai/auth-service/pkg/helpers"
)

// UserModule wires the account endpoints.
// Public: POST /register, POST /login, GET /validate-token
// Self-only: GET/PUT/DELETE /users/:id

type UserModule struct {
	Handler *handlers.UserHandler
	Tokens  *handlers.TokenHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, t *handlers.TokenHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Tokens: t, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()

	// Public with per-IP rate limiting; register and login are the
	// brute-force targets and get the tightest windows.
	registerLimiter := middleware.RateLimit(container.GetRedis(), cfg.RegisterRateLimit, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), cfg.LoginRateLimit, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.GET("/validate-token", m.Tokens.Validate)

	// Self-only
	auth := rg.Group("/users")
	auth.Use(middleware.Identity(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), cfg.GeneralRateLimit, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()))
	{
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
