// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that executes DDL generated by pkg/schema.
package ioschema

import (
	"context"
	"database/sql"
	"log/slog"
	"slices"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/pkg/db"
	"github.com/biomed-study/biodb/pkg/lifecycle"
	"github.com/biomed-study/biodb/pkg/schema"
)

// manager implements the lifecycle.SchemaManager interface.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Drop removes study tables in reverse creation order, so no table
// is dropped while another one still references it.
func (m *manager) Drop(ctx context.Context) error {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return NotConnectedError()
	}

	tables := schema.TableNames()
	slices.Reverse(tables)

	return iodb.Transaction(ctx, sqlDB, func(tx *sql.Tx) error {
		for _, table := range tables {
			q := "DROP TABLE IF EXISTS " + table
			if _, err := tx.ExecContext(ctx, q); err != nil {
				return DropTableError(table, err)
			}
			slog.Debug("Table dropped", "table", table)
		}
		return nil
	})
}

// Create creates all study tables and their indexes in one
// transaction.
func (m *manager) Create(ctx context.Context) error {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return NotConnectedError()
	}

	return iodb.Transaction(ctx, sqlDB, func(tx *sql.Tx) error {
		for _, model := range schema.AllModels() {
			table := model.TableName()
			if _, err := tx.ExecContext(ctx, model.TableDDL()); err != nil {
				return CreateSchemaError(table, err)
			}
			for _, idx := range model.IndexDDL() {
				if _, err := tx.ExecContext(ctx, idx); err != nil {
					return CreateSchemaError(table, err)
				}
			}
			slog.Debug("Table created", "table", table)
		}
		return nil
	})
}

// Reset drops and recreates the schema. All data is lost.
func (m *manager) Reset(ctx context.Context) error {
	if err := m.Drop(ctx); err != nil {
		return err
	}
	return m.Create(ctx)
}
