package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studywise-api/internal/domain"
	"github.com/phrazzld/studywise-api/internal/platform/logger"
	"github.com/phrazzld/studywise-api/internal/store"
)

// FlashcardService defines the application's set persistence and browsing
// operations over the document store.
type FlashcardService interface {
	// EnsureUserDocument creates the user's index document with an empty set
	// list if it does not exist yet. Returns true if a document was created,
	// false if one already existed.
	//
	// The operation is idempotent by construction but not atomic: two
	// concurrent first visits can both observe "absent" and both write. The
	// second overwrite is harmless only because the initial value is always
	// the same empty-list literal.
	EnsureUserDocument(ctx context.Context, userID string) (bool, error)

	// SaveSet persists a named set of cards for ownerID and appends the name
	// to the owner's index. The set document write is an unconditional
	// overwrite in a global name namespace: an existing set with this name
	// is silently replaced and reassigned to ownerID, regardless of its
	// previous owner. The index append is committed atomically; the set
	// document write itself happens before and outside that commit, so a
	// failure in between leaves an orphaned set document not referenced by
	// any index.
	SaveSet(ctx context.Context, ownerID, setName string, cards []domain.Card) error

	// ListSetNames returns the set names in the user's index in stored
	// order. Duplicates are possible. An absent index reads as empty.
	ListSetNames(ctx context.Context, userID string) ([]string, error)

	// GetCards returns the card sequence of the named set. A missing set
	// document, or a flashcards field that is absent or not a sequence,
	// degrades to an empty sequence rather than an error.
	GetCards(ctx context.Context, setName string) ([]domain.Card, error)
}

// flashcardService is the production implementation of FlashcardService.
type flashcardService struct {
	docs   store.DocumentStore
	logger *slog.Logger
}

// NewFlashcardService creates a FlashcardService backed by the given
// document store. If log is nil, a default logger will be used.
func NewFlashcardService(docs store.DocumentStore, log *slog.Logger) (FlashcardService, error) {
	if docs == nil {
		return nil, errors.New("document store cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &flashcardService{
		docs:   docs,
		logger: log.With(slog.String("component", "flashcard_service")),
	}, nil
}

// EnsureUserDocument implements FlashcardService.EnsureUserDocument.
func (s *flashcardService) EnsureUserDocument(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrEmptyUserID
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	var idx domain.UserIndex
	err := s.docs.Get(ctx, store.CollectionUsers, userID, &idx)
	if err == nil {
		log.Debug("user document already exists", slog.String("user_id", userID))
		return false, nil
	}

	if !errors.Is(err, store.ErrDocumentNotFound) {
		log.Error("failed to read user document",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return false, fmt.Errorf("failed to read user document: %w", err)
	}

	if err := s.docs.Set(ctx, store.CollectionUsers, userID, domain.NewUserIndex()); err != nil {
		log.Error("failed to create user document",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return false, fmt.Errorf("failed to create user document: %w", err)
	}

	log.Info("user document created", slog.String("user_id", userID))
	return true, nil
}

// SaveSet implements FlashcardService.SaveSet.
func (s *flashcardService) SaveSet(
	ctx context.Context,
	ownerID, setName string,
	cards []domain.Card,
) error {
	if setName == "" {
		return domain.ErrEmptySetName
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := domain.NewFlashcardSet(ownerID, cards)
	if err != nil {
		return err
	}

	// The index document must exist before it is updated.
	if _, err := s.EnsureUserDocument(ctx, ownerID); err != nil {
		return err
	}

	// Standalone overwrite of the set document. This write is not covered by
	// the batch below: a failure between here and the commit leaves the set
	// document stored but unindexed.
	if err := s.docs.Set(ctx, store.CollectionFlashcardSets, setName, set); err != nil {
		log.Error("failed to write set document",
			slog.String("error", err.Error()),
			slog.String("set_name", setName),
			slog.String("owner_id", ownerID))
		return fmt.Errorf("failed to write set document: %w", err)
	}

	// Read-modify-write append on the index, committed through the batch.
	// There is no conflict guard: concurrent saves can duplicate entries or
	// lose each other's appends.
	var idx domain.UserIndex
	err = s.docs.Get(ctx, store.CollectionUsers, ownerID, &idx)

	batch := s.docs.NewWriteBatch()
	switch {
	case err == nil:
		idx.Append(setName)
		batch.Set(store.CollectionUsers, ownerID, &idx)
	case errors.Is(err, store.ErrDocumentNotFound):
		fresh := domain.NewUserIndex()
		fresh.Append(setName)
		batch.Set(store.CollectionUsers, ownerID, fresh)
	default:
		log.Error("failed to read user index",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID))
		return fmt.Errorf("failed to read user index: %w", err)
	}

	if err := batch.Commit(ctx); err != nil {
		log.Error("failed to commit index update",
			slog.String("error", err.Error()),
			slog.String("set_name", setName),
			slog.String("owner_id", ownerID))
		return fmt.Errorf("failed to commit index update: %w", err)
	}

	log.Info("flashcard set saved",
		slog.String("set_name", setName),
		slog.String("owner_id", ownerID),
		slog.Int("card_count", len(set.Flashcards)))
	return nil
}

// ListSetNames implements FlashcardService.ListSetNames.
func (s *flashcardService) ListSetNames(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	var idx domain.UserIndex
	err := s.docs.Get(ctx, store.CollectionUsers, userID, &idx)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return []string{}, nil
		}
		log.Error("failed to read user index",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to read user index: %w", err)
	}

	return idx.SetNames(), nil
}

// GetCards implements FlashcardService.GetCards.
func (s *flashcardService) GetCards(ctx context.Context, setName string) ([]domain.Card, error) {
	if setName == "" {
		return nil, domain.ErrEmptySetName
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	var raw json.RawMessage
	err := s.docs.Get(ctx, store.CollectionFlashcardSets, setName, &raw)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return []domain.Card{}, nil
		}
		log.Error("failed to read set document",
			slog.String("error", err.Error()),
			slog.String("set_name", setName))
		return nil, fmt.Errorf("failed to read set document: %w", err)
	}

	// Defensive fallback: a document whose flashcards field is absent or not
	// a card sequence reads as empty, never as an error.
	var set domain.FlashcardSet
	if err := json.Unmarshal(raw, &set); err != nil {
		log.Warn("set document has unexpected shape, treating as empty",
			slog.String("error", err.Error()),
			slog.String("set_name", setName))
		return []domain.Card{}, nil
	}

	if set.Flashcards == nil {
		return []domain.Card{}, nil
	}

	return set.Flashcards, nil
}
