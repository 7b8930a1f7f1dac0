package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/mjgrant/bookrec-api/internal/api"
	apimiddleware "github.com/mjgrant/bookrec-api/internal/api/middleware"
	"github.com/mjgrant/bookrec-api/internal/metrics"
	"github.com/mjgrant/bookrec-api/internal/ws"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceID)
	r.Use(apimiddleware.Metrics(app.collector))

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	bookHandler := api.NewBookHandler(
		app.catalogService,
		app.reviewService,
		app.collector,
		app.logger,
	)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService, app.logger)

	// Credential endpoints get a per-client budget to slow down guessing.
	loginLimiter := apimiddleware.NewRateLimiter(rate.Limit(5), 10, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public, rate limited)
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Limit)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		})

		// Catalog read endpoints (public)
		r.Get("/books/suggest", bookHandler.SuggestByGenre)
		r.Get("/books/{bookID}/reviews", bookHandler.ListReviews)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/books/{bookID}/review", bookHandler.AddReview)
		})
	})

	// WebSocket notification channel; no auth, any listener may subscribe.
	r.Get("/ws", ws.NewHandler(app.hub, app.logger).ServeHTTP)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Prometheus exposition
	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	return r
}
