package router

import (
	userapp "github.com/scriptoria-ai/auth-service/internal/application"
	"github.com/scriptoria-ai/auth-service/internal/container"
	pginfra "github.com/scriptoria-ai/auth-service/internal/infrastructure/postgres"
	handlers "github.com/scriptoria-ai/auth-service/internal/interface/http"
	"github.com/scriptoria-ai/auth-service/internal/router/modules"
)

func buildUserModule() *modules.UserModule {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := userapp.NewService(
		repo,
		container.GetEngine(),
		container.GetJWT(),
		container.GetLogger(),
	)

	handler := handlers.NewUserHandler(service, container.GetLogger())
	tokens := handlers.NewTokenHandler(container.GetJWT())

	return modules.NewUserModule(handler, tokens, container.GetJWT())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	r.Add(buildUserModule())
	r.Add(modules.NewHealthModule())
}
