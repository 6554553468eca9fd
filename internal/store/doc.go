// Package store provides abstractions for data persistence. The application
// treats its backing database as a key-document store addressed by
// (collection, document ID); the concrete implementation lives in
// internal/platform/postgres.
package store
