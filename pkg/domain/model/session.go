package model

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

// Session represents an authenticated user session
type Session struct {
	ID        types.SessionID     `json:"id"`
	Secret    types.SessionSecret `json:"-"` // hidden from JSON
	UserID    types.UserID        `json:"user_id"`
	CreatedAt time.Time           `json:"created_at"`
	ExpiresAt time.Time           `json:"expires_at"`
}

// NewSession creates a new Session with a UUID v7 ID and a random secret
func NewSession(userID types.UserID, duration time.Duration) (*Session, error) {
	sessionID, err := types.NewSessionID()
	if err != nil {
		return nil, err
	}

	secret, err := generateRandomSecret(24)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Session{
		ID:        sessionID,
		Secret:    types.SessionSecret(secret),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
	}, nil
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsValid checks if the session is valid (not expired and has proper fields)
func (s *Session) IsValid() bool {
	return s.ID != "" && s.Secret != "" && s.UserID != "" && !s.IsExpired()
}

// generateRandomSecret generates a random base64-encoded string.
// byteLength is the number of random bytes (base64 output is ~1.33x longer).
func generateRandomSecret(byteLength int) (string, error) {
	bytes := make([]byte, byteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
