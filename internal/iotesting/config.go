// Package iotesting provides shared test utilities for database tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/biomed-study/biodb/pkg/db"
)

const (
	// TestDatabaseName is the file name of databases created by tests.
	TestDatabaseName = "biodb_test.db"
)

// GetTestConfig returns a configuration suitable for tests. The database
// file is placed in a temporary directory that is removed when the test
// finishes, so tests never touch a real study database.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.GetTestConfig(t)
//	    // ... use cfg for database operations
//	}
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath(filepath.Join(dir, TestDatabaseName)),
		config.OptHomeDir(dir),
		config.OptLogDestination("stderr"),
	})
	return cfg
}

// Connect returns an operator connected to the database of cfg.
// The connection is closed automatically when the test finishes.
func Connect(t *testing.T, cfg *config.Config) db.Operator {
	t.Helper()

	op := iodb.NewSQLiteOperator()
	if err := op.Connect(context.Background(), &cfg.Database); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		op.Close()
	})
	return op
}

// ConnectTemp is a shortcut for Connect(t, GetTestConfig(t)).
func ConnectTemp(t *testing.T) db.Operator {
	t.Helper()
	return Connect(t, GetTestConfig(t))
}
