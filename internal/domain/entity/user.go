package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/scriptoria-ai/auth-service/internal/domain/password"
	"github.com/scriptoria-ai/auth-service/internal/domain/valueobject"
)

var (
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrUnderage         = errors.New("user must be at least 18 years old")
	ErrNoProfile        = errors.New("user has no profile to update")
)

// User is the aggregate root: identity plus credentials plus its owned
// Profile. Mutation goes through UpdateDetails/UpdateProfile so the
// aggregate's rules cannot be bypassed.
type User struct {
	ID        uuid.UUID
	Username  valueobject.Username
	Age       int
	Email     valueobject.Email
	Password  *password.Password
	Profile   *Profile
	CreatedAt time.Time
}

// NewUser assembles a user from already-validated value objects.
func NewUser(username valueobject.Username, age int, email valueobject.Email, pw *password.Password) *User {
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Age:       age,
		Email:     email,
		Password:  pw,
		CreatedAt: time.Now().UTC(),
	}
}

// UpdateDetails applies partial changes to username and age. Zero values
// mean "leave unchanged". Age changes require an adult (18+), a stricter
// floor than the registration DTO's 1-120 range.
func (u *User) UpdateDetails(username string, age int) error {
	if username != "" {
		if len(username) < 3 {
			return ErrUsernameTooShort
		}
		name, err := valueobject.NewUsername(username)
		if err != nil {
			return err
		}
		u.Username = name
	}
	if age != 0 {
		if age < 18 {
			return ErrUnderage
		}
		u.Age = age
	}
	return nil
}

// UpdateProfile applies partial changes to the owned profile. Zero values
// mean "leave unchanged".
func (u *User) UpdateProfile(env valueobject.Environment, level valueobject.EducationLevel) error {
	if env == "" && level == "" {
		return nil
	}
	if u.Profile == nil {
		return ErrNoProfile
	}
	if env != "" {
		if !env.Valid() {
			return &valueobject.ValidationError{Field: "environment", Kind: valueobject.KindInvalidEnum, Message: "unknown environment"}
		}
		u.Profile.Environment = env
	}
	if level != "" {
		if !level.Valid() {
			return &valueobject.ValidationError{Field: "education_level", Kind: valueobject.KindInvalidEnum, Message: "unknown education level"}
		}
		u.Profile.EducationLevel = level
	}
	return nil
}
