package model

import (
	"time"

	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

// User represents an account on the site
type User struct {
	ID           types.UserID `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // bcrypt hash, never serialized
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewUser creates a new User instance
func NewUser(name, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           types.NewUserID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
