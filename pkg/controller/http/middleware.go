package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/usecase"
)

// Middleware provides common HTTP middleware
type Middleware struct {
	authUC usecase.AuthUseCase
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authUC usecase.AuthUseCase) *Middleware {
	return &Middleware{
		authUC: authUC,
	}
}

// RequireAuth checks the session cookies, validates the session and puts
// the authenticated identity into the request context
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionIDCookie, err := r.Cookie("session_id")
		if err != nil {
			http.Error(w, "Unauthorized: missing session_id", http.StatusUnauthorized)
			return
		}

		sessionSecretCookie, err := r.Cookie("session_secret")
		if err != nil {
			http.Error(w, "Unauthorized: missing session_secret", http.StatusUnauthorized)
			return
		}

		session, err := m.authUC.ValidateSession(r.Context(), sessionIDCookie.Value, sessionSecretCookie.Value)
		if err != nil {
			ctxlog.From(r.Context()).Debug("Session validation failed",
				"error", err,
				"sessionID", sessionIDCookie.Value,
			)
			http.Error(w, "Unauthorized: invalid session", http.StatusUnauthorized)
			return
		}

		user, err := m.authUC.GetUserFromSession(r.Context(), session.ID.String())
		if err != nil {
			ctxlog.From(r.Context()).Debug("User lookup for session failed",
				"error", err,
				"sessionID", session.ID,
			)
			http.Error(w, "Unauthorized: unknown user", http.StatusUnauthorized)
			return
		}

		authCtx := &model.AuthContext{
			UserID:  user.ID,
			Email:   user.Email,
			IsAdmin: m.authUC.IsAdmin(user.Email),
		}
		ctx := model.WithAuthContext(r.Context(), authCtx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware creates a chi-compatible logging middleware
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Embed logger from the initial context into request context
			r = r.WithContext(ctxlog.With(r.Context(), ctxlog.From(ctx)))

			logger := ctxlog.From(r.Context())
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.Query(),
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}
