// Package store persists dataset metadata records. The Postgres
// implementation backs the server; the in-memory implementation backs
// tests and keeps the rest of the codebase independent of pgx.
package store

import (
	"context"

	"github.com/validata/backend/internal/dataset"
)

// Store is the dataset metadata store. Records are immutable once
// inserted; there is no update operation.
type Store interface {
	// EnsureSchema creates backing structures if they do not exist.
	// Idempotent; invoked once at startup.
	EnsureSchema(ctx context.Context) error

	// Insert persists a new dataset record.
	Insert(ctx context.Context, d *dataset.Dataset) error

	// Get returns the record for id, or dataset.ErrNotFound.
	Get(ctx context.Context, id string) (*dataset.Dataset, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*dataset.Dataset, error)
}
