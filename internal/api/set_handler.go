package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/studywise-api/internal/api/shared"
	"github.com/phrazzld/studywise-api/internal/domain"
	"github.com/phrazzld/studywise-api/internal/service"
)

// SetHandler handles flashcard set HTTP requests
type SetHandler struct {
	flashcardService service.FlashcardService
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewSetHandler creates a new SetHandler
func NewSetHandler(flashcardService service.FlashcardService, logger *slog.Logger) *SetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SetHandler{
		flashcardService: flashcardService,
		validator:        validator.New(),
		logger:           logger.With(slog.String("component", "set_handler")),
	}
}

// SaveSet handles POST /api/flashcard-sets requests. The owner is taken
// from the authenticated token, never from the request body.
func (h *SetHandler) SaveSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(string)
	if !ok || userID == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SaveSetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	cards := make([]domain.Card, 0, len(req.Flashcards))
	for _, c := range req.Flashcards {
		cards = append(cards, domain.Card{Front: c.Front, Back: c.Back})
	}

	if err := h.flashcardService.SaveSet(r.Context(), userID, req.Name, cards); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to save flashcard set"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	h.logger.Debug("saved flashcard set",
		slog.String("trace_id", shared.GetTraceID(r.Context())),
		slog.Int("card_count", len(cards)))

	shared.RespondWithJSON(w, r, http.StatusCreated, MessageResponse{Message: "Flashcard set saved"})
}

// ListSets handles GET /api/flashcard-sets requests, returning the set
// names referenced from the authenticated user's index document.
func (h *SetHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(string)
	if !ok || userID == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	names, err := h.flashcardService.ListSetNames(r.Context(), userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list flashcard sets"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	refs := make([]SetRefResponse, 0, len(names))
	for _, name := range names {
		refs = append(refs, SetRefResponse{Name: name})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SetListResponse{FlashcardSets: refs})
}

// GetSetCards handles GET /api/flashcard-sets/{setName} requests. A set
// whose document is missing or malformed yields an empty card list
// rather than an error, so a half-written save never breaks browsing.
func (h *SetHandler) GetSetCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(string)
	if !ok || userID == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	setName := chi.URLParam(r, "setName")
	if setName == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Set name is required")
		return
	}

	cards, err := h.flashcardService.GetCards(r.Context(), setName)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to load flashcard set"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SetCardsResponse{Flashcards: cardsToResponse(cards)})
}
