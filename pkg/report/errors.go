package report

import (
	"fmt"

	"github.com/biomed-study/biodb/pkg/errcode"
	"github.com/gnames/gn"
)

// EncodeError creates an error for rows that cannot be encoded.
func EncodeError(err error) error {
	msg := "Cannot encode a result row"

	return &gn.Error{
		Code: errcode.ReportEncodeError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("cannot encode row: %w", err),
	}
}
