package lifecycle

import (
	"context"
)

// Runner executes the complete demonstration sequence: connect, reset
// schema, seed, query, update, delete, report and close.
type Runner interface {
	Run(ctx context.Context) error
}
