package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mjgrant/bookrec-api/internal/config"
	"github.com/mjgrant/bookrec-api/internal/events"
	"github.com/mjgrant/bookrec-api/internal/metrics"
	"github.com/mjgrant/bookrec-api/internal/platform/postgres"
	"github.com/mjgrant/bookrec-api/internal/service/auth"
	"github.com/mjgrant/bookrec-api/internal/service/catalog"
	"github.com/mjgrant/bookrec-api/internal/service/review"
	"github.com/mjgrant/bookrec-api/internal/store"
	"github.com/mjgrant/bookrec-api/internal/ws"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	bookStore store.BookStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	catalogService   catalog.Service
	reviewService    review.Service

	// Event system and notification channel
	eventEmitter events.Emitter
	hub          *ws.Hub

	// Metrics
	registry  *prometheus.Registry
	collector *metrics.Collector
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hashing
	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize metrics
	app.registry = prometheus.NewRegistry()
	app.collector = metrics.NewCollector(app.registry)

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, app.passwordHasher, logger)
	app.bookStore = postgres.NewPostgresBookStore(db, logger)

	// Initialize event emitter and the WebSocket hub that listens to it
	app.eventEmitter = events.NewInMemoryEmitter(logger)
	app.hub = ws.NewHub(logger, app.collector)
	if emitter, ok := app.eventEmitter.(*events.InMemoryEmitter); ok {
		emitter.RegisterHandler(app.hub)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register hub")
	}

	// Initialize catalog service
	app.catalogService = catalog.NewService(app.bookStore, logger)

	// Initialize review service
	app.reviewService = review.NewService(app.bookStore, app.eventEmitter, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the WebSocket hub and the HTTP server, handling lifecycle
// and cleanup. It returns an error if the server fails to start or
// encounters problems.
func (app *application) Run(ctx context.Context) error {
	hubCtx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()

	go func() {
		// Run returns hubCtx.Err() on shutdown; nothing to do with it here.
		_ = app.hub.Run(hubCtx)
	}()

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
