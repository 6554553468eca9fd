package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studywise-api/internal/domain"
	"github.com/phrazzld/studywise-api/internal/store"
)

// fakeDocumentStore is an in-memory store.DocumentStore for service tests.
// It counts mutating writes and supports fault injection per key.
type fakeDocumentStore struct {
	docs map[string]json.RawMessage

	// writeCount counts every persisted write, batched or not.
	writeCount int

	// failGet and failSet inject errors per "collection/id" key.
	failGet map[string]error
	failSet map[string]error

	// dropWrites makes standalone Set calls on the listed keys silently
	// persist nothing. Batch writes are unaffected.
	dropWrites map[string]bool

	// failCommit makes every batch commit fail.
	failCommit error
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{
		docs:       make(map[string]json.RawMessage),
		failGet:    make(map[string]error),
		failSet:    make(map[string]error),
		dropWrites: make(map[string]bool),
	}
}

func key(collection, id string) string { return collection + "/" + id }

func (f *fakeDocumentStore) Get(_ context.Context, collection, id string, v any) error {
	k := key(collection, id)
	if err := f.failGet[k]; err != nil {
		return err
	}
	data, ok := f.docs[k]
	if !ok {
		return store.ErrDocumentNotFound
	}
	return json.Unmarshal(data, v)
}

func (f *fakeDocumentStore) Set(_ context.Context, collection, id string, doc any) error {
	k := key(collection, id)
	if err := f.failSet[k]; err != nil {
		return err
	}
	if f.dropWrites[k] {
		return nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidDocument, err)
	}
	f.docs[k] = data
	f.writeCount++
	return nil
}

func (f *fakeDocumentStore) NewWriteBatch() store.WriteBatch {
	return store.NewWriteBatch(f)
}

func (f *fakeDocumentStore) CommitBatch(ctx context.Context, writes []store.BatchWrite) error {
	if f.failCommit != nil {
		return f.failCommit
	}
	for _, w := range writes {
		data, err := json.Marshal(w.Doc)
		if err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidDocument, err)
		}
		f.docs[key(w.Collection, w.ID)] = data
		f.writeCount++
	}
	return nil
}

// seed stores a raw JSON document directly, bypassing the service.
func (f *fakeDocumentStore) seed(collection, id, raw string) {
	f.docs[key(collection, id)] = json.RawMessage(raw)
}

func newTestService(t *testing.T) (FlashcardService, *fakeDocumentStore) {
	t.Helper()
	docs := newFakeDocumentStore()
	svc, err := NewFlashcardService(docs, nil)
	require.NoError(t, err)
	return svc, docs
}

func TestNewFlashcardServiceNilStore(t *testing.T) {
	svc, err := NewFlashcardService(nil, nil)
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestEnsureUserDocumentIdempotent(t *testing.T) {
	svc, docs := newTestService(t)
	ctx := context.Background()

	created, err := svc.EnsureUserDocument(ctx, "user_1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, docs.writeCount)

	// Stored value is the empty-list literal.
	assert.JSONEq(t, `{"flashcardSets":[]}`, string(docs.docs[key(store.CollectionUsers, "user_1")]))

	// Second call observes the document and performs no mutating write.
	created, err = svc.EnsureUserDocument(ctx, "user_1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, docs.writeCount)
}

func TestEnsureUserDocumentEmptyUserID(t *testing.T) {
	svc, docs := newTestService(t)

	_, err := svc.EnsureUserDocument(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEmptyUserID)
	assert.Zero(t, docs.writeCount)
}

func TestEnsureUserDocumentStoreFailures(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("store unavailable")

	t.Run("read_failure", func(t *testing.T) {
		svc, docs := newTestService(t)
		docs.failGet[key(store.CollectionUsers, "user_1")] = storeErr

		_, err := svc.EnsureUserDocument(ctx, "user_1")
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("write_failure", func(t *testing.T) {
		svc, docs := newTestService(t)
		docs.failSet[key(store.CollectionUsers, "user_1")] = storeErr

		_, err := svc.EnsureUserDocument(ctx, "user_1")
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestSaveSetRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cards := []domain.Card{
		{Front: "France", Back: "Paris"},
		{Front: "Japan", Back: "Tokyo"},
	}

	require.NoError(t, svc.SaveSet(ctx, "u1", "Capitals", cards))

	got, err := svc.GetCards(ctx, "Capitals")
	require.NoError(t, err)
	assert.Equal(t, cards, got)

	names, err := svc.ListSetNames(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Capitals"}, names)
}

func TestSaveSetValidation(t *testing.T) {
	svc, docs := newTestService(t)
	ctx := context.Background()
	cards := []domain.Card{{Front: "A", Back: "B"}}

	err := svc.SaveSet(ctx, "u1", "", cards)
	assert.ErrorIs(t, err, domain.ErrEmptySetName)

	err = svc.SaveSet(ctx, "", "Biology101", cards)
	assert.ErrorIs(t, err, domain.ErrEmptyOwnerID)

	assert.Zero(t, docs.writeCount, "validation failures must not reach the store")
}

func TestSaveSetOverwriteReassignsOwnership(t *testing.T) {
	svc, docs := newTestService(t)
	ctx := context.Background()

	first := []domain.Card{{Front: "Mitochondria", Back: "Powerhouse of the cell"}}
	second := []domain.Card{{Front: "Ribosome", Back: "Protein synthesis"}}
	other := []domain.Card{{Front: "H2O", Back: "Water"}}

	require.NoError(t, svc.SaveSet(ctx, "u1", "Biology101", first))
	require.NoError(t, svc.SaveSet(ctx, "u1", "Chemistry", other))

	// A different user saves under the same global name: content replaced,
	// ownership silently reassigned, no error.
	require.NoError(t, svc.SaveSet(ctx, "u2", "Biology101", second))

	got, err := svc.GetCards(ctx, "Biology101")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	var setDoc domain.FlashcardSet
	require.NoError(t, json.Unmarshal(docs.docs[key(store.CollectionFlashcardSets, "Biology101")], &setDoc))
	assert.Equal(t, "u2", setDoc.UserID)

	// Differently-named sets are untouched.
	got, err = svc.GetCards(ctx, "Chemistry")
	require.NoError(t, err)
	assert.Equal(t, other, got)

	// The first owner's index still references the name it saved.
	names, err := svc.ListSetNames(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, names, "Biology101")
}

func TestSaveSetSameNameAppendsIndexAgain(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	cards := []domain.Card{{Front: "A", Back: "B"}}

	require.NoError(t, svc.SaveSet(ctx, "u1", "Biology101", cards))
	require.NoError(t, svc.SaveSet(ctx, "u1", "Biology101", cards))

	// The append is unconditional; the index does not deduplicate.
	names, err := svc.ListSetNames(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Biology101", "Biology101"}, names)
}

func TestSaveSetNilCardsStoredAsEmptyArray(t *testing.T) {
	svc, docs := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveSet(ctx, "u1", "Empty", nil))

	assert.JSONEq(t, `{"flashcards":[],"userId":"u1"}`,
		string(docs.docs[key(store.CollectionFlashcardSets, "Empty")]))
}

func TestSaveSetSetWriteFailureAbortsBeforeIndexUpdate(t *testing.T) {
	svc, docs := newTestService(t)
	ctx := context.Background()
	storeErr := errors.New("store unavailable")
	docs.failSet[key(store.CollectionFlashcardSets, "Biology101")] = storeErr

	err := svc.SaveSet(ctx, "u1", "Biology101", []domain.Card{{Front: "A", Back: "B"}})
	assert.ErrorIs(t, err, storeErr)

	names, err := svc.ListSetNames(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSaveSetCommitFailureLeavesOrphanedSetDocument(t *testing.T) {
	svc, docs := newTestService(t)
	ctx := context.Background()
	docs.failCommit = errors.New("commit failed")

	cards := []domain.Card{{Front: "A", Back: "B"}}
	err := svc.SaveSet(ctx, "u1", "Biology101", cards)
	require.Error(t, err)

	// The standalone set write is outside the batch: the document is stored
	// but no index references it.
	got, err := svc.GetCards(ctx, "Biology101")
	require.NoError(t, err)
	assert.Equal(t, cards, got)

	names, err := svc.ListSetNames(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSaveSetRecreatesMissingIndexInBatch(t *testing.T) {
	svc, docs := newTestService(t)
	ctx := context.Background()

	// The ensure write is dropped, so the index re-read observes "absent"
	// and the batch must create a fresh single-entry index.
	docs.dropWrites[key(store.CollectionUsers, "u1")] = true

	require.NoError(t, svc.SaveSet(ctx, "u1", "Biology101", []domain.Card{{Front: "A", Back: "B"}}))

	names, err := svc.ListSetNames(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Biology101"}, names)
}

func TestListSetNames(t *testing.T) {
	svc, docs := newTestService(t)
	ctx := context.Background()

	t.Run("absent_index_reads_empty", func(t *testing.T) {
		names, err := svc.ListSetNames(ctx, "nobody")
		require.NoError(t, err)
		require.NotNil(t, names)
		assert.Empty(t, names)
	})

	t.Run("stored_order_preserved", func(t *testing.T) {
		docs.seed(store.CollectionUsers, "u1",
			`{"flashcardSets":[{"name":"Zeta"},{"name":"Alpha"},{"name":"Zeta"}]}`)

		names, err := svc.ListSetNames(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Zeta", "Alpha", "Zeta"}, names)
	})

	t.Run("empty_user_id", func(t *testing.T) {
		_, err := svc.ListSetNames(ctx, "")
		assert.ErrorIs(t, err, domain.ErrEmptyUserID)
	})

	t.Run("store_failure", func(t *testing.T) {
		storeErr := errors.New("store unavailable")
		docs.failGet[key(store.CollectionUsers, "u2")] = storeErr

		_, err := svc.ListSetNames(ctx, "u2")
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestGetCardsDefensiveFallbacks(t *testing.T) {
	svc, docs := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		seed string
	}{
		{name: "flashcards_field_absent", seed: `{"userId":"u1"}`},
		{name: "flashcards_not_a_sequence", seed: `{"flashcards":"nope","userId":"u1"}`},
		{name: "flashcards_wrong_element_type", seed: `{"flashcards":[1,2,3],"userId":"u1"}`},
		{name: "flashcards_null", seed: `{"flashcards":null,"userId":"u1"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			docs.seed(store.CollectionFlashcardSets, "Odd", tc.seed)

			cards, err := svc.GetCards(ctx, "Odd")
			require.NoError(t, err)
			require.NotNil(t, cards)
			assert.Empty(t, cards)
		})
	}
}

func TestGetCardsNonexistentSet(t *testing.T) {
	svc, _ := newTestService(t)

	cards, err := svc.GetCards(context.Background(), "NoSuchSet")
	require.NoError(t, err)
	require.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestGetCardsEmptySetName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetCards(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEmptySetName)
}

func TestGetCardsStoreFailure(t *testing.T) {
	svc, docs := newTestService(t)
	storeErr := errors.New("store unavailable")
	docs.failGet[key(store.CollectionFlashcardSets, "Biology101")] = storeErr

	_, err := svc.GetCards(context.Background(), "Biology101")
	assert.ErrorIs(t, err, storeErr)
}
