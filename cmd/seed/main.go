package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/scriptoria-ai/auth-service/config"
	"github.com/scriptoria-ai/auth-service/internal/domain/entity"
	"github.com/scriptoria-ai/auth-service/internal/domain/password"
	"github.com/scriptoria-ai/auth-service/internal/domain/repository"
	"github.com/scriptoria-ai/auth-service/internal/domain/valueobject"
	pginfra "github.com/scriptoria-ai/auth-service/internal/infrastructure/postgres"
	"github.com/scriptoria-ai/auth-service/pkg/helpers"
)

// Seeds a demo account through the same domain stack the service uses, so
// the seeded row satisfies every invariant.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	dict := password.LoadDictionary(cfg.CommonPasswordsFile, logger)
	engine := password.NewEngine(dict, cfg.BcryptCost)

	email, err := valueobject.NewEmail("demo@scriptoria.ai")
	if err != nil {
		log.Fatalf("invalid seed email: %v", err)
	}
	username, err := valueobject.NewUsername("demo_user")
	if err != nil {
		log.Fatalf("invalid seed username: %v", err)
	}
	pw, err := engine.New("Demo1234!seed")
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	user := entity.NewUser(username, 25, email, pw)
	user.Profile = entity.NewProfile(user.ID, valueobject.EnvironmentHome, valueobject.EducationBachelor)

	repo := pginfra.NewUserRepository(pool)
	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) || errors.Is(err, repository.ErrDuplicateUsername) {
			fmt.Println("seed user already exists")
			return
		}
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s\n", user.ID, email, username)
}
