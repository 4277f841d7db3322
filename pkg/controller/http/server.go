package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/usecase"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router           chi.Router
	authMiddleware   *Middleware
	authHandler      *AuthHandler
	issueHandler     *IssueHandler
	dashboardHandler *DashboardHandler
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	site *model.SiteConfig,
	authUC usecase.AuthUseCase,
	issueUC usecase.IssueUseCase,
	dashboardUC usecase.DashboardUseCase,
) (*Server, error) {
	if site == nil {
		return nil, goerr.New("site configuration is required")
	}

	router := chi.NewRouter()
	authMiddleware := NewMiddleware(authUC)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	authHandler := NewAuthHandler(authUC)
	issueHandler := NewIssueHandler(issueUC)
	dashboardHandler := NewDashboardHandler(dashboardUC, site)

	// Health check
	router.Get("/health", handleHealth)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.HandleSignUp)
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/logout", authHandler.HandleLogout)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Get("/me", authHandler.HandleMe)
			})
		})

		// Everything past authentication
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)

			r.Get("/sectors", dashboardHandler.HandleSectors)
			r.Get("/disciplines", dashboardHandler.HandleDisciplines)
			r.Get("/dashboard", dashboardHandler.HandleSummary)

			r.Route("/issues", func(r chi.Router) {
				r.Get("/", issueHandler.HandleList)
				r.Post("/", issueHandler.HandleCreate)
				r.Route("/{issueID}", func(r chi.Router) {
					r.Get("/", issueHandler.HandleGet)
					r.Patch("/", issueHandler.HandleUpdate)
					r.Delete("/", issueHandler.HandleDelete)
					r.Post("/resolve", issueHandler.HandleResolve)
				})
			})

			r.Post("/marks/resolve", issueHandler.HandleResolveMark)
		})
	})

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:           router,
		authMiddleware:   authMiddleware,
		authHandler:      authHandler,
		issueHandler:     issueHandler,
		dashboardHandler: dashboardHandler,
	}

	return server, nil
}

// Router exposes the chi router, mainly for tests
func (s *Server) Router() chi.Router {
	return s.router
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "incendio",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(context.Background()).Error("Failed to encode response", "error", err)
	}
}
