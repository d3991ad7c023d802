package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scriptoria-ai/auth-service/internal/domain/entity"
	"github.com/scriptoria-ai/auth-service/internal/domain/password"
	"github.com/scriptoria-ai/auth-service/internal/domain/repository"
	"github.com/scriptoria-ai/auth-service/internal/domain/valueobject"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user and its profile in one transaction. Unique
// violations are mapped to the repository sentinels; the database constraint
// is the authoritative guard against concurrent duplicate registrations.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO users (user_id, username, email, password_hash, age, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Username.String(), u.Email.String(), u.Password.Hash, u.Age, u.CreatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	if u.Profile != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (profile_id, user_id, role, environment, education_level)
			VALUES ($1, $2, $3, $4, $5)
		`, u.Profile.ID, u.Profile.UserID, string(u.Profile.Role), string(u.Profile.Environment), string(u.Profile.EducationLevel))
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.getBy(ctx, "u.user_id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "u.email = $1", email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getBy(ctx, "u.username = $1", username)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT u.user_id, u.username, u.email, u.password_hash, u.age, u.created_at,
		       p.profile_id, p.role, p.environment, p.education_level
		FROM users u
		JOIN profiles p ON p.user_id = u.user_id
		WHERE `+where, arg)

	var u entity.User
	var id, profileID uuid.UUID
	var username, email, hash string
	var role, env, level string
	var age int
	if err := row.Scan(&id, &username, &email, &hash, &age, &u.CreatedAt,
		&profileID, &role, &env, &level); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	u.ID = id
	u.Age = age
	u.Password = password.FromHash(hash)
	// Stored rows already passed value-object validation on the way in.
	if name, err := valueobject.NewUsername(username); err == nil {
		u.Username = name
	}
	if em, err := valueobject.NewEmail(email); err == nil {
		u.Email = em
	}
	u.Profile = &entity.Profile{
		ID:             profileID,
		UserID:         id,
		Role:           valueobject.Role(role),
		Environment:    valueobject.Environment(env),
		EducationLevel: valueobject.EducationLevel(level),
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE users SET username = $1, age = $2 WHERE user_id = $3
	`, u.Username.String(), u.Age, u.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	if u.Profile != nil {
		_, err = tx.Exec(ctx, `
			UPDATE profiles SET environment = $1, education_level = $2 WHERE user_id = $3
		`, string(u.Profile.Environment), string(u.Profile.EducationLevel), u.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes the user; the profile row goes with it via ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return repository.ErrDuplicateEmail
		case strings.Contains(pgErr.ConstraintName, "username"):
			return repository.ErrDuplicateUsername
		}
	}
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
