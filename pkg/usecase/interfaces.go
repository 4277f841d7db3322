package usecase

import (
	"context"

	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

// AuthUseCase defines the interface for authentication operations
type AuthUseCase interface {
	// SignUp creates a new user account
	SignUp(ctx context.Context, name, email, password string) (*model.User, error)

	// Login verifies credentials and creates a session
	Login(ctx context.Context, email, password string) (*model.Session, error)

	// ValidateSession validates a session by ID and secret
	ValidateSession(ctx context.Context, sessionID, sessionSecret string) (*model.Session, error)

	// DeleteSession deletes a session
	DeleteSession(ctx context.Context, sessionID string) error

	// GetUserFromSession gets user information from a session
	GetUserFromSession(ctx context.Context, sessionID string) (*model.User, error)

	// IsAdmin reports whether the email holds the admin capability
	IsAdmin(email string) bool
}

// IssueUseCase defines the interface for issue operations
type IssueUseCase interface {
	// List returns issues matching the filter, newest first, each
	// annotated with its derived status
	List(ctx context.Context, filter model.Filter) ([]*AnnotatedIssue, error)

	// Get retrieves a single issue with its derived status
	Get(ctx context.Context, id types.IssueID) (*AnnotatedIssue, error)

	// Create registers a new issue and dispatches the notification
	Create(ctx context.Context, input CreateIssueInput) (*model.Issue, error)

	// Update applies a partial mutation to an issue
	Update(ctx context.Context, id types.IssueID, input UpdateIssueInput) (*model.Issue, error)

	// Resolve closes an issue by recording its resolution date
	Resolve(ctx context.Context, id types.IssueID, on types.Date) (*model.Issue, error)

	// Delete removes an issue permanently (admin only)
	Delete(ctx context.Context, id types.IssueID) error

	// ResolveMark decides whether a click selects an existing mark or
	// places a new one
	ResolveMark(ctx context.Context, sector types.SectorID, click model.Position) (*model.MarkPlacement, error)
}

// DashboardUseCase defines the interface for dashboard aggregation
type DashboardUseCase interface {
	// GetSummary aggregates all issues against the current date
	GetSummary(ctx context.Context) (*model.Summary, error)
}
