package iodb

import (
	"errors"
	"strings"

	"github.com/gnames/gn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ConstraintKind tells which declared constraint rejected a statement.
type ConstraintKind int

const (
	NoConstraint ConstraintKind = iota
	CheckConstraint
	ForeignKeyConstraint
	NotNullConstraint
	UniqueConstraint
	OtherConstraint
)

// String returns a human-readable name of the constraint kind.
func (k ConstraintKind) String() string {
	switch k {
	case CheckConstraint:
		return "check"
	case ForeignKeyConstraint:
		return "foreign key"
	case NotNullConstraint:
		return "not null"
	case UniqueConstraint:
		return "unique"
	case OtherConstraint:
		return "constraint"
	default:
		return "none"
	}
}

// IsConstraintViolation returns true if err, or an error it wraps, was
// caused by an SQLite constraint.
func IsConstraintViolation(err error) bool {
	return Constraint(err) != NoConstraint
}

// Constraint classifies the SQLite constraint behind err.
func Constraint(err error) ConstraintKind {
	sqlErr, ok := asSQLiteError(err)
	if !ok {
		return NoConstraint
	}

	code := sqlErr.Code()
	if code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return NoConstraint
	}

	switch code {
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return CheckConstraint
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyConstraint
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullConstraint
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return UniqueConstraint
	}

	// primary code only, fall back to the message
	msg := sqlErr.Error()
	switch {
	case strings.Contains(msg, "CHECK constraint"):
		return CheckConstraint
	case strings.Contains(msg, "FOREIGN KEY constraint"):
		return ForeignKeyConstraint
	case strings.Contains(msg, "NOT NULL constraint"):
		return NotNullConstraint
	case strings.Contains(msg, "UNIQUE constraint"):
		return UniqueConstraint
	}
	return OtherConstraint
}

func asSQLiteError(err error) (*sqlite.Error, bool) {
	for err != nil {
		if e, ok := err.(*sqlite.Error); ok {
			return e, true
		}
		if e, ok := err.(*gn.Error); ok {
			err = e.Err
			continue
		}
		err = errors.Unwrap(err)
	}
	return nil, false
}
