package ioschema

import (
	"fmt"

	"github.com/biomed-study/biodb/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// DropTableError creates an error for tables that cannot be
// dropped.
func DropTableError(table string, err error) error {
	msg := `Cannot drop table <em>%s</em>

<em>Possible causes:</em>
  - The database file is read-only
  - Another process holds a lock on the database

<em>How to fix:</em>
  1. Check file permissions of the database
  2. Close other programs that use the database`

	return &gn.Error{
		Code: errcode.SchemaDropError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(table string, err error) error {
	msg := `Cannot create table <em>%s</em>

<em>Possible causes:</em>
  - The table already exists
  - Invalid schema definitions
  - The database file is read-only

<em>How to fix:</em>
  1. Run <em>biodb reset</em> to drop old tables first
  2. Check file permissions of the database`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to create table %s: %w", table, err),
	}
}
