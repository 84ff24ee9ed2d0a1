package lifecycle

import (
	"context"
)

// Optimizer verifies and compacts the study database.
//
// Optimization never changes data. It fails if the file is damaged or a
// row refers to a missing patient, and otherwise refreshes query planner
// statistics and rebuilds the file to reclaim free pages.
type Optimizer interface {
	// Optimize returns statistics of the optimized database file.
	Optimize(ctx context.Context) (OptimizeStats, error)
}

// OptimizeStats describes the database file before and after
// optimization.
type OptimizeStats struct {
	// SizeBefore and SizeAfter are file sizes in bytes.
	SizeBefore int64
	SizeAfter  int64

	// FreePages is the number of unused pages removed by VACUUM.
	FreePages int
}
