package iodb

import (
	"fmt"

	"github.com/biomed-study/biodb/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError is returned when the database file cannot be opened.
func ConnectionError(path string, err error) error {
	msg := `Cannot open database <em>%s</em>

<em>Possible causes:</em>
  - The directory of the file does not exist
  - The file is not an SQLite database
  - Insufficient file permissions

<em>How to fix:</em>
  1. Check the path in the config file or the --db flag
  2. Make sure the directory exists and is writable`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open %s: %w", path, err),
	}
}

// CloseError is returned when the database cannot be closed cleanly.
func CloseError(path string, err error) error {
	msg := "Cannot close database <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to close %s: %w", path, err),
	}
}

// NotConnectedError creates an error for operations attempted
// before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError is returned when checking for tables fails.
func TableCheckError(err error) error {
	msg := "Cannot verify database state"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// TableExistsCheckError is returned when a table lookup fails.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// RowCountError is returned when rows of a table cannot be counted.
func RowCountError(table string, err error) error {
	msg := "Cannot count rows of <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBRowCountError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to count rows in %s: %w", table, err),
	}
}

// TransactionError is returned when a transaction cannot be started
// or committed.
func TransactionError(stage string, err error) error {
	msg := "Cannot %s database transaction"

	return &gn.Error{
		Code: errcode.DBTransactionError,
		Msg:  msg,
		Vars: []any{stage},
		Err:  fmt.Errorf("failed to %s transaction: %w", stage, err),
	}
}

// SequenceError is returned when the last issued id of a table cannot
// be read.
func SequenceError(table string, err error) error {
	msg := "Cannot read id sequence of <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBSequenceError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to read sqlite_sequence for %s: %w", table, err),
	}
}
