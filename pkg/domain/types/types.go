package types

import (
	"github.com/google/uuid"
)

// IssueID represents an issue identifier
type IssueID string

// String returns the string representation
func (id IssueID) String() string {
	return string(id)
}

// NewIssueID creates a new IssueID
func NewIssueID() IssueID {
	return IssueID(uuid.New().String())
}

// SectorID represents a sector identifier from the site configuration
type SectorID string

// String returns the string representation
func (id SectorID) String() string {
	return string(id)
}

// DisciplineID represents a discipline identifier from the site configuration
type DisciplineID string

// String returns the string representation
func (id DisciplineID) String() string {
	return string(id)
}

// UserID represents a user identifier
type UserID string

// String returns the string representation
func (id UserID) String() string {
	return string(id)
}

// NewUserID creates a new UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// SessionID represents a session identifier
type SessionID string

// String returns the string representation
func (id SessionID) String() string {
	return string(id)
}

// NewSessionID creates a new SessionID using UUID v7
func NewSessionID() (SessionID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return SessionID(id.String()), nil
}

// SessionSecret represents a session secret token
type SessionSecret string

// String returns the string representation
func (s SessionSecret) String() string {
	return string(s)
}
