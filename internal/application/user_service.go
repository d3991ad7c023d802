package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scriptoria-ai/auth-service/internal/domain/entity"
	"github.com/scriptoria-ai/auth-service/internal/domain/password"
	repo "github.com/scriptoria-ai/auth-service/internal/domain/repository"
	"github.com/scriptoria-ai/auth-service/internal/domain/valueobject"
	"github.com/scriptoria-ai/auth-service/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrEmptyUpdate        = errors.New("no fields to update")
)

// Service orchestrates the user use cases: validate inputs, check
// preconditions against the repository, mutate the aggregate, persist, map
// to a response.
type Service struct {
	Repo   repo.UserRepository
	Engine *password.Engine
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewService(r repo.UserRepository, engine *password.Engine, jwt *helpers.JWTManager, logger *logrus.Logger) *Service {
	return &Service{Repo: r, Engine: engine, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	Age            int
	Environment    valueobject.Environment
	EducationLevel valueobject.EducationLevel
}

type RegisterResult struct {
	UserID   string
	Username string
	Email    string
}

// Register creates a new user with its profile. The duplicate lookups here
// are a fast path; the database unique constraints remain the final guard
// against concurrent registrations.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Repo.GetByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	email, err := valueobject.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	username, err := valueobject.NewUsername(in.Username)
	if err != nil {
		return nil, err
	}
	pw, err := s.Engine.New(in.Password)
	if err != nil {
		return nil, err
	}

	user := entity.NewUser(username, in.Age, email, pw)
	user.Profile = entity.NewProfile(user.ID, in.Environment, in.EducationLevel)

	if err := s.Repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repo.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"user_id":  user.ID.String(),
			"username": user.Username.String(),
			"strength": pw.Strength,
		}).Info("user registered")
	}

	return &RegisterResult{
		UserID:   user.ID.String(),
		Username: user.Username.String(),
		Email:    user.Email.String(),
	}, nil
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Login authenticates by email and password and issues a signed token.
// Unknown email and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, plain string) (*LoginResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.Password.Verify(plain) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateAccessToken(u.ID.String())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID.String()).Error("generate access token failed")
		}
		return nil, err
	}
	return &LoginResult{AccessToken: token, ExpiresAt: exp}, nil
}

type UserDetail struct {
	UserID         string
	Username       string
	Email          string
	Age            int
	Role           valueobject.Role
	Environment    valueobject.Environment
	EducationLevel valueobject.EducationLevel
}

// Get returns the user's own record including the profile.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*UserDetail, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toDetail(u), nil
}

type UpdateInput struct {
	Username       string
	Age            int
	Environment    valueobject.Environment
	EducationLevel valueobject.EducationLevel
}

// IsEmpty reports whether the update carries no changes at all.
func (in UpdateInput) IsEmpty() bool {
	return in.Username == "" && in.Age == 0 && in.Environment == "" && in.EducationLevel == ""
}

// Update applies a partial update through the aggregate's mutation methods.
// A changed username is re-checked for uniqueness before persisting.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*UserDetail, error) {
	if in.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if in.Username != "" && in.Username != u.Username.String() {
		if _, err := s.Repo.GetByUsername(ctx, in.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
	}

	if err := u.UpdateDetails(in.Username, in.Age); err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(in.Environment, in.EducationLevel); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return toDetail(u), nil
}

// Delete removes the user and, through the cascade, its profile.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", id.String()).Info("user deleted")
	}
	return nil
}

func toDetail(u *entity.User) *UserDetail {
	d := &UserDetail{
		UserID:   u.ID.String(),
		Username: u.Username.String(),
		Email:    u.Email.String(),
		Age:      u.Age,
	}
	if u.Profile != nil {
		d.Role = u.Profile.Role
		d.Environment = u.Profile.Environment
		d.EducationLevel = u.Profile.EducationLevel
	}
	return d
}
