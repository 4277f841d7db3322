package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/domain/interfaces"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 24 * time.Hour

// Auth implements AuthUseCase with repository-based storage and bcrypt
// password hashing. Admin capability is a policy stub: a single
// configured privileged email.
type Auth struct {
	repo       interfaces.Repository
	adminEmail string
}

// NewAuth creates a new Auth use case
func NewAuth(repo interfaces.Repository, adminEmail string) *Auth {
	return &Auth{
		repo:       repo,
		adminEmail: adminEmail,
	}
}

// SignUp creates a new user account
func (a *Auth) SignUp(ctx context.Context, name, email, password string) (*model.User, error) {
	logger := ctxlog.From(ctx)

	if name == "" {
		return nil, goerr.New("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, goerr.New("a valid email is required")
	}
	if len(password) < 6 {
		return nil, goerr.New("password must be at least 6 characters")
	}

	if _, err := a.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, goerr.Wrap(model.ErrEmailTaken, "failed to sign up",
			goerr.V("email", email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	user := model.NewUser(name, email, string(hash))
	if err := a.repo.SaveUser(ctx, user); err != nil {
		return nil, goerr.Wrap(err, "failed to save user")
	}

	logger.Info("Created new user",
		"userID", user.ID,
		"email", email,
	)

	return user, nil
}

// Login verifies credentials and creates a session
func (a *Auth) Login(ctx context.Context, email, password string) (*model.Session, error) {
	logger := ctxlog.From(ctx)

	if email == "" || password == "" {
		return nil, goerr.New("email and password are required")
	}

	user, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, goerr.New("invalid credentials")
	}

	session, err := model.NewSession(user.ID, sessionDuration)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create session")
	}

	if err := a.repo.SaveSession(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to save session")
	}

	logger.Info("Created new session",
		"sessionID", session.ID,
		"userID", user.ID,
		"expiresAt", session.ExpiresAt,
	)

	return session, nil
}

// ValidateSession validates a session by ID and secret
func (a *Auth) ValidateSession(ctx context.Context, sessionID, sessionSecret string) (*model.Session, error) {
	if sessionID == "" || sessionSecret == "" {
		return nil, goerr.New("session ID and secret are required")
	}

	session, err := a.repo.GetSession(ctx, types.SessionID(sessionID))
	if err != nil {
		return nil, goerr.Wrap(err, "session not found")
	}

	if session.Secret.String() != sessionSecret {
		return nil, goerr.New("invalid session secret")
	}

	if session.IsExpired() {
		return nil, goerr.New("session expired")
	}

	return session, nil
}

// DeleteSession deletes a session
func (a *Auth) DeleteSession(ctx context.Context, sessionID string) error {
	logger := ctxlog.From(ctx)

	if sessionID == "" {
		return goerr.New("session ID is required")
	}

	if err := a.repo.DeleteSession(ctx, types.SessionID(sessionID)); err != nil {
		return goerr.Wrap(err, "failed to delete session")
	}

	logger.Info("Deleted session",
		"sessionID", sessionID,
	)

	return nil
}

// GetUserFromSession gets user information from a session
func (a *Auth) GetUserFromSession(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, goerr.New("session ID is required")
	}

	session, err := a.repo.GetSession(ctx, types.SessionID(sessionID))
	if err != nil {
		return nil, goerr.Wrap(err, "session not found")
	}

	user, err := a.repo.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user")
	}

	return user, nil
}

// IsAdmin reports whether the email holds the admin capability
func (a *Auth) IsAdmin(email string) bool {
	return a.adminEmail != "" && email == a.adminEmail
}

var _ AuthUseCase = (*Auth)(nil) // Compile-time interface check
