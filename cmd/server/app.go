package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/smartsite/task-api/internal/config"
	"github.com/smartsite/task-api/internal/domain/classify"
	"github.com/smartsite/task-api/internal/platform/postgres"
	"github.com/smartsite/task-api/internal/service"
	"github.com/smartsite/task-api/internal/service/auth"
	"github.com/smartsite/task-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskStore    store.TaskStore
	historyStore store.TaskHistoryStore

	taskService service.TaskService

	// nil when auth.jwt_secret is not configured
	jwtService auth.JWTService
}

// newApplication wires stores and services on top of an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	if cfg.Auth.Enabled() {
		var err error
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("Bearer token actor identification enabled",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	}

	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.historyStore = postgres.NewPostgresTaskHistoryStore(db, logger)

	taskService, err := service.NewTaskService(
		app.taskStore,
		app.historyStore,
		store.NewDBTxRunner(db),
		classify.NewDefaultClassifier(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.taskService = taskService

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
}
