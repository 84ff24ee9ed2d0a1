package lifecycle

import (
	"context"

	"github.com/biomed-study/biodb/pkg/seed"
)

// Seeder inserts seed rows into a freshly created schema.
// Patients are inserted before visits and samples because foreign keys
// are checked at insert time. All rows are committed together, a failed
// row leaves the database unchanged.
type Seeder interface {
	Seed(ctx context.Context, data *seed.Data) (seed.Summary, error)
}
