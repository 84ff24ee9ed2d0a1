package seed

import (
	"fmt"

	"github.com/biomed-study/biodb/pkg/errcode"
	"github.com/gnames/gn"
)

// ParseError creates an error for seed data that is not valid YAML.
func ParseError(err error) error {
	msg := `Cannot parse seed data

<em>How to fix:</em>
  1. Check the YAML syntax of the seed file
  2. Keep the top-level keys: patients, clinical_visits, samples`

	return &gn.Error{
		Code: errcode.SeedReadError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("cannot parse seed data: %w", err),
	}
}
