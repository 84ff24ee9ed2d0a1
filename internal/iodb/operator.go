// Package iodb implements database operations on an embedded SQLite
// file. This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/biomed-study/biodb/pkg/config"
	"github.com/biomed-study/biodb/pkg/db"
	_ "modernc.org/sqlite"
)

// sqliteOperator implements db.Operator interface over a single
// SQLite connection.
type sqliteOperator struct {
	db   *sql.DB
	path string
}

// NewSQLiteOperator creates a new database operator
// (without connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens the SQLite file, creating it if needed.
// The pool is limited to one connection, so the operator is the only
// user of the file handle for its whole life.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	if s.db != nil {
		return nil
	}

	dsn := buildDSN(cfg)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return ConnectionError(cfg.Path, err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err = sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return ConnectionError(cfg.Path, err)
	}

	// foreign keys are off by default in SQLite, cascades depend on them
	if err = enableForeignKeys(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return ConnectionError(cfg.Path, err)
	}

	s.db = sqlDB
	s.path = cfg.Path
	slog.Debug("Database connection established", "path", cfg.Path)
	return nil
}

func buildDSN(cfg *config.DatabaseConfig) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	if cfg.BusyTimeout > 0 {
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout))
	}
	return cfg.Path + "?" + q.Encode()
}

func enableForeignKeys(ctx context.Context, sqlDB *sql.DB) error {
	if _, err := sqlDB.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return err
	}

	var on int
	err := sqlDB.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&on)
	if err != nil {
		return err
	}
	if on != 1 {
		return fmt.Errorf("foreign key enforcement is not available")
	}
	return nil
}

// Close releases the database connection.
func (s *sqliteOperator) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return CloseError(s.path, err)
	}
	slog.Debug("Database connection closed", "path", s.path)
	return nil
}

// DB returns the underlying sql.DB for high-level components.
func (s *sqliteOperator) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *sqliteOperator) Path() string {
	return s.path
}

// TableExists checks if a table exists in the current
// database.
func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table'
			AND name = ?
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the database has any tables besides the
// internal sqlite_* ones.
func (s *sqliteOperator) HasTables(
	ctx context.Context,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table'
			AND name NOT LIKE 'sqlite_%'
		)
	`

	var hasTables bool
	err := s.db.QueryRowContext(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, TableCheckError(err)
	}

	return hasTables, nil
}

// RowCount returns the number of rows in an existing table.
func (s *sqliteOperator) RowCount(
	ctx context.Context,
	tableName string,
) (int, error) {
	exists, err := s.TableExists(ctx, tableName)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, RowCountError(tableName,
			fmt.Errorf("table %s does not exist", tableName))
	}

	q := "SELECT count(*) FROM " + quoteIdent(tableName)
	var res int
	if err = s.db.QueryRowContext(ctx, q).Scan(&res); err != nil {
		return 0, RowCountError(tableName, err)
	}
	return res, nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
