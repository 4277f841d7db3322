package model

import (
	"context"

	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const authContextKey contextKey = "authContext"

// AuthContext carries the authenticated identity through a request and
// across async boundaries. It is injected explicitly rather than read from
// global state so that components needing the creator or the admin flag
// stay deterministic under test.
type AuthContext struct {
	UserID  types.UserID `json:"user_id,omitempty"`
	Email   string       `json:"email,omitempty"`
	IsAdmin bool         `json:"is_admin,omitempty"`
}

// WithAuthContext adds AuthContext to the context
func WithAuthContext(ctx context.Context, authCtx *AuthContext) context.Context {
	if authCtx == nil {
		return ctx
	}
	return context.WithValue(ctx, authContextKey, authCtx)
}

// GetAuthContext retrieves AuthContext from the context
func GetAuthContext(ctx context.Context) (*AuthContext, bool) {
	authCtx, ok := ctx.Value(authContextKey).(*AuthContext)
	return authCtx, ok
}

// Clone creates a copy of the AuthContext
func (a *AuthContext) Clone() *AuthContext {
	if a == nil {
		return nil
	}
	return &AuthContext{
		UserID:  a.UserID,
		Email:   a.Email,
		IsAdmin: a.IsAdmin,
	}
}
