package iooptimize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/biomed-study/biodb/pkg/errcode"
	"github.com/gnames/gn"
)

// IntegrityError is returned when SQLite reports a damaged file.
func IntegrityError(problems []string, err error) error {
	msg := `Database file is damaged

<em>How to fix:</em>
  1. Restore the file from a backup
  2. Or run <em>biodb run</em> to rebuild the study data`

	if err == nil {
		err = errors.New(strings.Join(problems, "; "))
	}

	return &gn.Error{
		Code: errcode.OptimizeIntegrityError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("integrity check: %w", err),
	}
}

// ForeignKeyError is returned when rows refer to missing patients.
func ForeignKeyError(violations []Violation, err error) error {
	msg := `Found %d rows that refer to missing patients

These rows were added while foreign keys were not enforced.`

	if err == nil {
		parts := make([]string, len(violations))
		for i, v := range violations {
			parts[i] = fmt.Sprintf("%s row %d -> %s", v.Table, v.RowID, v.Parent)
		}
		err = errors.New(strings.Join(parts, "; "))
	}

	return &gn.Error{
		Code: errcode.OptimizeForeignKeyError,
		Msg:  msg,
		Vars: []any{len(violations)},
		Err:  fmt.Errorf("foreign key check: %w", err),
	}
}

// VacuumError is returned when a maintenance statement fails.
func VacuumError(stmt string, err error) error {
	msg := "Cannot run <em>%s</em>"

	return &gn.Error{
		Code: errcode.OptimizeVacuumError,
		Msg:  msg,
		Vars: []any{stmt},
		Err:  fmt.Errorf("%s: %w", stmt, err),
	}
}
