// Package postgres provides PostgreSQL implementations of the store
// interfaces. Documents live in a single table keyed by (collection, doc_id)
// with the body stored as JSONB.
package postgres
