package entity

import (
	"github.com/google/uuid"

	"github.com/scriptoria-ai/auth-service/internal/domain/valueobject"
)

// Profile is owned 1:1 by a User and removed with it (cascade).
type Profile struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Role           valueobject.Role
	Environment    valueobject.Environment
	EducationLevel valueobject.EducationLevel
}

// NewProfile creates a profile for the given user. Role defaults to student.
func NewProfile(userID uuid.UUID, env valueobject.Environment, level valueobject.EducationLevel) *Profile {
	return &Profile{
		ID:             uuid.New(),
		UserID:         userID,
		Role:           valueobject.RoleStudent,
		Environment:    env,
		EducationLevel: level,
	}
}
