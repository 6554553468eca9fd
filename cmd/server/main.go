// Package main implements the entry point for the StudyWise API server,
// which turns pasted study text into flashcards via an LLM and persists
// named flashcard sets per user.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/phrazzld/studywise-api/internal/config"
	"github.com/phrazzld/studywise-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a database migration command (up, down, status) and exit",
	)
	flag.Parse()

	// A missing .env file is fine; real deployments configure via the
	// environment directly.
	_ = godotenv.Load()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// run loads configuration, wires the application, and either executes a
// migration command or starts the HTTP server.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database connection", "error", closeErr)
		}
	}()

	if migrateCmd != "" {
		if err := runMigrations(db, migrateCmd, appLogger); err != nil {
			return fmt.Errorf("migration %q failed: %w", migrateCmd, err)
		}
		appLogger.Info("migration completed", "command", migrateCmd)
		return nil
	}

	app, err := newApplication(context.Background(), cfg, db, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
