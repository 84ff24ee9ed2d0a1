package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// There is no migration path: the schema is always dropped and created
// from scratch, which makes Reset safe to run any number of times.
type SchemaManager interface {
	// Drop removes the study tables if they exist, dependent tables first.
	Drop(ctx context.Context) error

	// Create creates the study tables, their foreign keys and indexes.
	// Fails if any of the tables already exists.
	Create(ctx context.Context) error

	// Reset runs Drop and then Create.
	Reset(ctx context.Context) error
}
