// Package main implements the entry point for the task API server, which
// classifies, stores and audits task records over HTTP.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/smartsite/task-api/internal/config"
	"github.com/smartsite/task-api/internal/platform/logger"
	"github.com/smartsite/task-api/internal/platform/postgres"
)

// cliOptions holds the command-line flags of the server binary.
type cliOptions struct {
	migrate     string
	autoMigrate bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(context.Background(), opts); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

// parseFlags reads the command-line flags. An unknown -migrate command is
// rejected before any connection is attempted.
func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command and exit ("+strings.Join(postgres.MigrationCommands, "|")+")")
	fs.BoolVar(&opts.autoMigrate, "auto-migrate", true, "apply pending migrations before serving")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.migrate != "" && !slices.Contains(postgres.MigrationCommands, opts.migrate) {
		return opts, fmt.Errorf("unknown migration command %q", opts.migrate)
	}

	return opts, nil
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until shutdown.
func run(ctx context.Context, opts cliOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"auth_enabled", cfg.Auth.Enabled())

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}

	if opts.migrate != "" {
		defer closeDB(db, l)
		return runMigrationCommand(ctx, db, opts.migrate, l)
	}

	if opts.autoMigrate {
		if err := postgres.ApplyMigrations(ctx, db, l); err != nil {
			closeDB(db, l)
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		closeDB(db, l)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// runMigrationCommand executes command against db. The version command
// prints the applied version to stdout so scripts can read it.
func runMigrationCommand(ctx context.Context, db *sql.DB, command string, l *slog.Logger) error {
	l.Info("Running migration command", "command", command)

	if command == postgres.MigrateVersion {
		version, err := postgres.MigrationVersion(ctx, db, l)
		if err != nil {
			return err
		}
		fmt.Println(version)
		return nil
	}

	if err := postgres.RunMigrations(ctx, db, command, l); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	l.Info("Migration command completed", "command", command)
	return nil
}
