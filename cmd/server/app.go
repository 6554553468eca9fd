package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studywise-api/internal/config"
	"github.com/phrazzld/studywise-api/internal/generation"
	"github.com/phrazzld/studywise-api/internal/platform/gemini"
	"github.com/phrazzld/studywise-api/internal/platform/postgres"
	"github.com/phrazzld/studywise-api/internal/service"
	"github.com/phrazzld/studywise-api/internal/service/auth"
)

// application holds the server's wired dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	jwtService       auth.JWTService
	generator        generation.Generator
	flashcardService service.FlashcardService
}

// newApplication wires all application services from the loaded
// configuration and the established database connection.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	generator, err := gemini.NewGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard generator: %w", err)
	}

	documentStore := postgres.NewPostgresDocumentStore(db, logger)

	flashcardService, err := service.NewFlashcardService(documentStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           logger,
		jwtService:       jwtService,
		generator:        generator,
		flashcardService: flashcardService,
	}, nil
}
