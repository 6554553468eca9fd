package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/studywise-api/internal/api/shared"
	"github.com/phrazzld/studywise-api/internal/service"
)

// UserHandler handles user document HTTP requests
type UserHandler struct {
	flashcardService service.FlashcardService
	logger           *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(flashcardService service.FlashcardService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		flashcardService: flashcardService,
		logger:           logger.With(slog.String("component", "user_handler")),
	}
}

// EnsureUser handles POST /api/users/ensure requests. It creates the
// user's index document if it does not already exist. The operation is
// idempotent and safe to call on every sign-in.
func (h *UserHandler) EnsureUser(w http.ResponseWriter, r *http.Request) {
	var req EnsureUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "User ID is required")
		return
	}

	if req.UserID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "User ID is required")
		return
	}

	created, err := h.flashcardService.EnsureUserDocument(r.Context(), req.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w,
			r,
			http.StatusInternalServerError,
			"Internal Server Error",
			err,
		)
		return
	}

	message := "User document already exists"
	if created {
		message = "User document created"
	}

	h.logger.Debug("ensured user document",
		slog.String("trace_id", shared.GetTraceID(r.Context())),
		slog.Bool("created", created))

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: message})
}
