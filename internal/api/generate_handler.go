package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/studywise-api/internal/api/shared"
	"github.com/phrazzld/studywise-api/internal/domain"
	"github.com/phrazzld/studywise-api/internal/generation"
)

// GenerateHandler handles flashcard generation HTTP requests
type GenerateHandler struct {
	generator generation.Generator
	validator *validator.Validate
	logger    *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler
func NewGenerateHandler(generator generation.Generator, logger *slog.Logger) *GenerateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateHandler{
		generator: generator,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "generate_handler")),
	}
}

// GenerateFlashcards handles POST /api/generate requests. The response
// body is a bare JSON array of {front, back} objects.
func (h *GenerateHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	cards, err := h.generator.GenerateFlashcards(r.Context(), req.Text, req.NumFlashcards)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	h.logger.Debug("generated flashcards",
		slog.String("trace_id", shared.GetTraceID(r.Context())),
		slog.Int("requested", req.NumFlashcards),
		slog.Int("returned", len(cards)))

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// cardsToResponse converts domain cards to response DTOs, never nil.
func cardsToResponse(cards []domain.Card) []CardResponse {
	response := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		response = append(response, CardResponse{Front: c.Front, Back: c.Back})
	}
	return response
}
