package iodb

import (
	"context"
	"database/sql"
	"errors"
)

// LastID returns the last id issued to an AUTOINCREMENT table. Deleting
// rows does not reset it, only dropping the table does. It returns 0 if
// the table never issued an id.
func LastID(ctx context.Context, sqlDB *sql.DB, table string) (int64, error) {
	if sqlDB == nil {
		return 0, NotConnectedError()
	}

	var exists bool
	err := sqlDB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = 'sqlite_sequence'
		)`).Scan(&exists)
	if err != nil {
		return 0, SequenceError(table, err)
	}
	if !exists {
		return 0, nil
	}

	var res int64
	err = sqlDB.QueryRowContext(ctx,
		"SELECT seq FROM sqlite_sequence WHERE name = ?", table,
	).Scan(&res)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, SequenceError(table, err)
	}
	return res, nil
}
