package db

import (
	"context"
	"database/sql"

	"github.com/biomed-study/biodb/pkg/config"
)

// Operator defines the interface for basic database management operations.
// It owns the single connection to the SQLite file and exposes it to
// high-level lifecycle components (SchemaManager, Seeder, study Store),
// which execute their own SQL.
type Operator interface {
	// Connect opens the database file. Foreign key enforcement is always
	// switched on.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close releases the connection. It is safe to call Close more
	// than once.
	Close() error

	// DB returns the underlying handle, or nil before Connect.
	DB() *sql.DB

	// Path returns the file the operator is connected to.
	Path() string

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any user tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// RowCount returns the number of rows in a table.
	RowCount(ctx context.Context, tableName string) (int, error)
}
