package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/budget-tracker/internal/auth"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/category"
	"github.com/frahmantamala/budget-tracker/internal/expense"
	"github.com/frahmantamala/budget-tracker/internal/notification"
	"github.com/frahmantamala/budget-tracker/internal/realtime"
	"github.com/frahmantamala/budget-tracker/internal/transport/middleware"
	"github.com/frahmantamala/budget-tracker/internal/transport/swagger"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	Category     *category.Handler
	Budget       *budget.Handler
	Expense      *expense.Handler
	Notification *notification.Handler
	Realtime     *realtime.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, registry *realtime.Registry, h Handlers, corsOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, registry)

	// Apply global middleware
	router.Use(middleware.CORSWithOrigins(corsOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", h.Auth.Register)
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
			})
		}

		// WebSocket upgrade authenticates via query token, not the
		// bearer middleware, so it stays outside the protected group.
		if h.Realtime != nil {
			r.Get("/ws", h.Realtime.Serve)
		}

		if h.Auth != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)

				pr.Get("/users/me", h.Auth.Me)

				if h.Category != nil {
					pr.Route("/categories", func(cr chi.Router) {
						cr.Post("/", h.Category.Create)
						cr.Get("/", h.Category.List)
					})
				}

				if h.Budget != nil {
					pr.Route("/budget/{month}", func(br chi.Router) {
						br.Put("/", h.Budget.Save)
						br.Get("/", h.Budget.Get)
						br.Get("/summary", h.Budget.Summary)
					})
				}

				if h.Expense != nil {
					pr.Route("/expenses", func(er chi.Router) {
						er.Post("/", h.Expense.Create)
						er.Get("/", h.Expense.List)
					})
				}

				if h.Notification != nil {
					pr.Route("/notifications", func(nr chi.Router) {
						nr.Get("/", h.Notification.List)
						nr.Post("/{id}/read", h.Notification.MarkRead)
					})
				}
			})
		}
	})
}
