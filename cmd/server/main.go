// Package main implements the entry point for the Notewell API server,
// which manages study notes, generates quizzes through an LLM, and serves
// cached education reference data.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/notewell/notewell-api/internal/config"
	"github.com/notewell/notewell-api/internal/platform/logger"
	"github.com/notewell/notewell-api/internal/platform/postgres"
)

func main() {
	migrateFlag := flag.String("migrate", "", "run database migrations (up|down) and exit")
	flag.Parse()

	if err := run(*migrateFlag); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run wires the application together and blocks until shutdown. It is
// separate from main so failures return instead of exiting directly.
func run(migrateDirection string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	ctx := context.Background()

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	if migrateDirection != "" {
		defer func() {
			if err := db.Close(); err != nil {
				appLogger.Error("error closing database connection", "error", err)
			}
		}()
		return runMigrations(ctx, db, migrateDirection, appLogger)
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// runMigrations applies or rolls back the embedded schema migrations.
func runMigrations(ctx context.Context, db *sql.DB, direction string, appLogger *slog.Logger) error {
	switch direction {
	case "up":
		if err := postgres.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
		appLogger.Info("migrations applied")
	case "down":
		if err := postgres.MigrateDown(ctx, db); err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
		appLogger.Info("migrations rolled back")
	default:
		return fmt.Errorf("unknown migration direction %q, want up or down", direction)
	}
	return nil
}
