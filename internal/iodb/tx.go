package iodb

import (
	"context"
	"database/sql"
	"log/slog"
)

// Transaction runs fn inside a transaction. The transaction is committed
// when fn succeeds and rolled back otherwise. Errors from fn are
// returned as they are.
func Transaction(
	ctx context.Context,
	sqlDB *sql.DB,
	fn func(*sql.Tx) error,
) error {
	if sqlDB == nil {
		return NotConnectedError()
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return TransactionError("begin", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("Failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return TransactionError("commit", err)
	}
	return nil
}
