package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/phrazzld/studywise-api/internal/config"
	"github.com/phrazzld/studywise-api/internal/domain"
	"github.com/phrazzld/studywise-api/internal/generation"
)

// systemPromptTemplate is the instruction sent alongside the user's source
// text. The count is embedded verbatim; whether the model honors it exactly
// is accepted, not enforced.
const systemPromptTemplate = `You are a flashcard creator. Take in text and create exactly {{.Count}} flashcards.
Each flashcard should have a front and back, with one sentence each.
Format your response as JSON:
{
  "flashcards": [
    {
      "front": "Front of the card",
      "back": "Back of the card"
    }
  ]
}
`

// jsonResponseMIMEType asks the API for structured JSON output instead of
// free-form text.
const jsonResponseMIMEType = "application/json"

// Generator implements the generation.Generator interface using Google's
// Gemini API to generate flashcards from source text.
//
// There is deliberately no retry, backoff, or prompt caching here: each call
// maps to exactly one API request, and every failure is terminal for the
// triggering user action.
type Generator struct {
	logger         *slog.Logger
	config         config.LLMConfig
	promptTemplate *template.Template
	client         *genai.Client
	model          string
}

// Ensure Generator implements generation.Generator
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a new Generator with the provided dependencies.
//
// Returns a properly initialized Generator or an error wrapping
// generation.ErrInvalidConfig if the configuration is incomplete or the
// Gemini client cannot be constructed.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("flashcards").Parse(systemPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:         logger,
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// GenerateFlashcards implements generation.Generator. It builds the system
// instruction for the requested count, sends the source text as the user
// content in JSON response mode, and parses the returned envelope.
func (g *Generator) GenerateFlashcards(
	ctx context.Context,
	sourceText string,
	count int,
) ([]domain.Card, error) {
	if sourceText == "" {
		return nil, ErrEmptySourceText
	}
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	// A per-call ID correlates the request and response log lines.
	log := g.logger.With(slog.String("generation_id", uuid.New().String()))

	systemPrompt, err := g.buildSystemPrompt(count)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "calling Gemini API",
		slog.String("model", g.model),
		slog.Int("requested_count", count),
		slog.Int("source_length", len(sourceText)))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(sourceText),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			ResponseMIMEType:  jsonResponseMIMEType,
		})
	if err != nil {
		log.ErrorContext(ctx, "Gemini API call failed",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	text, err := extractResponseText(resp)
	if err != nil {
		log.ErrorContext(ctx, "Gemini response unusable",
			slog.String("error", err.Error()))
		return nil, err
	}

	cards, err := g.parseResponse(text)
	if err != nil {
		log.ErrorContext(ctx, "failed to parse Gemini response",
			slog.String("error", err.Error()))
		return nil, err
	}

	if len(cards) != count {
		// Accepted imprecision, not a contract violation.
		log.WarnContext(ctx, "model returned a different card count than requested",
			slog.Int("requested", count),
			slog.Int("returned", len(cards)))
	}

	log.InfoContext(ctx, "Gemini API call successful",
		slog.Int("card_count", len(cards)))
	return cards, nil
}

// buildSystemPrompt renders the system instruction for the given card count.
func (g *Generator) buildSystemPrompt(count int) (string, error) {
	var buf bytes.Buffer
	if err := g.promptTemplate.Execute(&buf, promptData{Count: count}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// extractResponseText pulls the text body out of a generation response,
// mapping the API's failure shapes onto the generation package's sentinel
// errors.
func extractResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	return text, nil
}

// parseResponse decodes the JSON envelope and returns the card sequence
// exactly as the model produced it. Entries missing front or back pass
// through unchanged; only an undecodable envelope is an error.
func (g *Generator) parseResponse(text string) ([]domain.Card, error) {
	var parsed responseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}

	cards := make([]domain.Card, 0, len(parsed.Flashcards))
	for _, card := range parsed.Flashcards {
		cards = append(cards, domain.Card{
			Front: card.Front,
			Back:  card.Back,
		})
	}

	return cards, nil
}
