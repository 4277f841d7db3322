package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/usecase"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUC usecase.AuthUseCase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUC usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// HandleSignUp handles POST /api/auth/signup
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	user, err := h.authUC.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, model.ErrEmailTaken) {
			status = http.StatusConflict
		}
		writeError(w, err, status)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		ID:      user.ID.String(),
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: h.authUC.IsAdmin(user.Email),
	})
}

// HandleLogin handles POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	session, err := h.authUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err, http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    session.ID.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   !isLocalhost(r),
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "session_secret",
		Value:    session.Secret.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   !isLocalhost(r),
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})

	ctxlog.From(r.Context()).Info("User authenticated successfully",
		"userID", session.UserID,
		"sessionID", session.ID,
	)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "logged in successfully",
	})
}

// HandleLogout handles POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil && cookie.Value != "" {
		if err := h.authUC.DeleteSession(r.Context(), cookie.Value); err != nil {
			ctxlog.From(r.Context()).Warn("Failed to delete session",
				"error", err,
				"sessionID", cookie.Value,
			)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "session_secret",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// HandleMe handles GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := model.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cookie, err := r.Cookie("session_id")
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.authUC.GetUserFromSession(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, err, http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:      user.ID.String(),
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: authCtx.IsAdmin,
	})
}

// isLocalhost reports whether the request targets a local development host
func isLocalhost(r *http.Request) bool {
	host := r.Host
	if idx := strings.LastIndex(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	return host == "localhost" || host == "127.0.0.1"
}
