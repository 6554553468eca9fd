package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studywise-api/internal/platform/logger"
	"github.com/phrazzld/studywise-api/internal/store"
)

// PostgresDocumentStore implements the store.DocumentStore interface using a
// PostgreSQL database as the storage backend. Each document is one row in
// the documents table; Set is an upsert, so writes are unconditional
// overwrites exactly like the document-store contract requires.
type PostgresDocumentStore struct {
	// db is the connection used to open batch transactions. Nil when this
	// instance is scoped to a transaction.
	db *sql.DB

	// q is the query target: the connection outside a transaction, the
	// transaction inside one.
	q store.DBTX

	logger *slog.Logger
}

// NewPostgresDocumentStore creates a new PostgreSQL implementation of the
// DocumentStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewPostgresDocumentStore(db *sql.DB, log *slog.Logger) *PostgresDocumentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresDocumentStore{
		db:     db,
		q:      db,
		logger: log.With(slog.String("component", "document_store")),
	}
}

// Ensure PostgresDocumentStore implements store.DocumentStore
var _ store.DocumentStore = (*PostgresDocumentStore)(nil)

// Ensure PostgresDocumentStore can commit batches
var _ store.BatchCommitter = (*PostgresDocumentStore)(nil)

// withTx returns a copy of the store that issues its writes through the
// given transaction. Batch commits are not available on the returned copy.
func (s *PostgresDocumentStore) withTx(tx *sql.Tx) *PostgresDocumentStore {
	return &PostgresDocumentStore{
		q:      tx,
		logger: s.logger,
	}
}

// Get implements store.DocumentStore.Get.
// Returns store.ErrDocumentNotFound if no document exists at the key.
func (s *PostgresDocumentStore) Get(ctx context.Context, collection, id string, v any) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT data
		FROM documents
		WHERE collection = $1 AND doc_id = $2
	`

	var data []byte
	err := s.q.QueryRowContext(ctx, query, collection, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("document not found",
				slog.String("collection", collection),
				slog.String("doc_id", id))
			return store.ErrDocumentNotFound
		}
		log.Error("failed to get document",
			slog.String("error", err.Error()),
			slog.String("collection", collection),
			slog.String("doc_id", id))
		return MapError(err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Error("failed to decode document",
			slog.String("error", err.Error()),
			slog.String("collection", collection),
			slog.String("doc_id", id))
		return fmt.Errorf("%w: %v", store.ErrInvalidDocument, err)
	}

	return nil
}

// Set implements store.DocumentStore.Set.
// The write is an unconditional overwrite: an existing document at the key
// is replaced without any ownership or version check.
func (s *PostgresDocumentStore) Set(ctx context.Context, collection, id string, doc any) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	data, err := json.Marshal(doc)
	if err != nil {
		log.Error("failed to encode document",
			slog.String("error", err.Error()),
			slog.String("collection", collection),
			slog.String("doc_id", id))
		return fmt.Errorf("%w: %v", store.ErrInvalidDocument, err)
	}

	query := `
		INSERT INTO documents (collection, doc_id, data, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (collection, doc_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`

	if _, err := s.q.ExecContext(ctx, query, collection, id, data); err != nil {
		log.Error("failed to set document",
			slog.String("error", err.Error()),
			slog.String("collection", collection),
			slog.String("doc_id", id))
		return MapError(err)
	}

	log.Debug("document written",
		slog.String("collection", collection),
		slog.String("doc_id", id),
		slog.Int("size_bytes", len(data)))
	return nil
}

// NewWriteBatch implements store.DocumentStore.NewWriteBatch.
func (s *PostgresDocumentStore) NewWriteBatch() store.WriteBatch {
	return store.NewWriteBatch(s)
}

// CommitBatch implements store.BatchCommitter. All writes are applied inside
// a single database transaction: either every staged document becomes
// visible or none does.
func (s *PostgresDocumentStore) CommitBatch(ctx context.Context, writes []store.BatchWrite) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.db == nil {
		return fmt.Errorf("%w: batch commit requires a connection, not a transaction",
			store.ErrTransactionFailed)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.withTx(tx)
		for _, w := range writes {
			if err := txStore.Set(ctx, w.Collection, w.ID, w.Doc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("batch commit failed",
			slog.String("error", err.Error()),
			slog.Int("write_count", len(writes)))
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}

	log.Debug("batch committed", slog.Int("write_count", len(writes)))
	return nil
}
