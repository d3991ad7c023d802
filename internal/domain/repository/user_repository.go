package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/scriptoria-ai/auth-service/internal/domain/entity"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already registered")
)

// UserRepository defines the interface for user-related database operations.
// Create and Update must surface ErrDuplicateEmail/ErrDuplicateUsername when
// the store's uniqueness constraints fire; the application-level lookups are
// only a fast path and do not close the read-then-write race.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
