package iostudy

import (
	"fmt"

	"github.com/biomed-study/biodb/pkg/errcode"
	"github.com/gnames/gn"
)

// QueryError is returned when a read query fails.
func QueryError(name string, err error) error {
	msg := `Cannot run <em>%s</em> query

<em>How to fix:</em>
  1. Run <em>biodb reset</em> and <em>biodb seed</em> to rebuild tables
  2. Check that the database file is a study database`

	return &gn.Error{
		Code: errcode.StudyQueryError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("query %s: %w", name, err),
	}
}

// UpdateError is returned when a row cannot be updated.
func UpdateError(table string, id int64, err error) error {
	msg := "Cannot update row %d of <em>%s</em>"

	return &gn.Error{
		Code: errcode.StudyUpdateError,
		Msg:  msg,
		Vars: []any{id, table},
		Err:  fmt.Errorf("update %s id %d: %w", table, id, err),
	}
}

// DeleteError is returned when a patient cannot be deleted.
func DeleteError(patientID int64, err error) error {
	msg := "Cannot delete patient %d"

	return &gn.Error{
		Code: errcode.StudyDeleteError,
		Msg:  msg,
		Vars: []any{patientID},
		Err:  fmt.Errorf("delete patient %d: %w", patientID, err),
	}
}

// NotFoundError is returned when a mutation or lookup matches no row.
func NotFoundError(entity string, id int64) error {
	msg := "No %s with id <em>%d</em>"

	return &gn.Error{
		Code: errcode.StudyNotFoundError,
		Msg:  msg,
		Vars: []any{entity, id},
		Err:  fmt.Errorf("%s %d not found", entity, id),
	}
}
