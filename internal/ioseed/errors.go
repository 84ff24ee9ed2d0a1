package ioseed

import (
	"fmt"
	"runtime"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/pkg/errcode"
	"github.com/gnames/gn"
)

// InsertError is returned when a seed row cannot be inserted. The
// index is the 0-based position of the row in its seed list.
func InsertError(table string, idx int, err error) error {
	msg := `Cannot insert row %d into <em>%s</em>`
	vars := []any{idx + 1, table}

	switch iodb.Constraint(err) {
	case iodb.CheckConstraint:
		msg += `

<em>A value is out of its allowed range:</em>
  - age must be from 18 to 90
  - gender must be Male, Female or Other
  - sample_type must be Blood, Serum, Plasma or Urine`
	case iodb.ForeignKeyConstraint:
		msg += `

The row refers to a patient that does not exist.
Patients are numbered from 1 in the order of the seed file.`
	case iodb.NotNullConstraint:
		msg += `

A required value is missing.`
	}

	return &gn.Error{
		Code: errcode.SeedInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("insert into %s, row %d: %w", table, idx+1, err),
	}
}

// ReadFileError is returned when a seed file cannot be read.
func ReadFileError(path string, err error) error {
	msg := "Cannot read seed file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}
