package store

import "context"

// Collection names used by the application. The two collections are
// independent top-level namespaces; the relationship between a user index
// entry and a set document is a name reference the store does not enforce.
const (
	// CollectionUsers holds one index document per user, keyed by user ID.
	CollectionUsers = "users"

	// CollectionFlashcardSets holds one document per flashcard set, keyed by
	// set name. The key namespace is global, not scoped per owner.
	CollectionFlashcardSets = "flashcardSets"
)

// DocumentStore defines the interface for the key-document persistence layer.
// Documents are addressed by (collection, id) and stored as JSON.
type DocumentStore interface {
	// Get reads the document at (collection, id) and decodes its JSON body
	// into v. Returns ErrDocumentNotFound if no document exists at that key.
	Get(ctx context.Context, collection, id string, v any) error

	// Set writes doc (JSON-marshaled) at (collection, id), unconditionally
	// overwriting any existing document. There is no create-only variant and
	// no owner check; callers that need create-if-absent must read first.
	Set(ctx context.Context, collection, id string, doc any) error

	// NewWriteBatch returns an empty write batch. Writes staged on the batch
	// are applied atomically by Commit: either all of them become visible or
	// none do. Writes issued through Set outside a batch are NOT covered by
	// any batch's atomicity.
	NewWriteBatch() WriteBatch
}

// WriteBatch stages overwrite writes for a single atomic commit.
type WriteBatch struct {
	writes    []BatchWrite
	committer BatchCommitter
}

// BatchWrite is one staged overwrite write.
type BatchWrite struct {
	Collection string
	ID         string
	Doc        any
}

// BatchCommitter applies a staged write list atomically. Implemented by the
// concrete document store.
type BatchCommitter interface {
	CommitBatch(ctx context.Context, writes []BatchWrite) error
}

// NewWriteBatch creates a batch that commits through the given committer.
func NewWriteBatch(committer BatchCommitter) WriteBatch {
	return WriteBatch{committer: committer}
}

// Set stages an overwrite write of doc at (collection, id). Staged writes are
// applied in the order they were added.
func (b *WriteBatch) Set(collection, id string, doc any) {
	b.writes = append(b.writes, BatchWrite{Collection: collection, ID: id, Doc: doc})
}

// Commit applies all staged writes atomically. Committing an empty batch is
// a no-op. The batch must not be reused after Commit.
func (b *WriteBatch) Commit(ctx context.Context) error {
	if len(b.writes) == 0 {
		return nil
	}
	return b.committer.CommitBatch(ctx, b.writes)
}
