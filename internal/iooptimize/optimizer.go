// Package iooptimize implements Optimizer interface for SQLite
// maintenance. This is an impure I/O package that checks integrity,
// updates planner statistics and compacts the database file.
package iooptimize

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/pkg/db"
	"github.com/biomed-study/biodb/pkg/lifecycle"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
)

// optimizer implements the Optimizer interface.
type optimizer struct {
	operator db.Operator
}

// NewOptimizer creates a new Optimizer.
func NewOptimizer(op db.Operator) lifecycle.Optimizer {
	return &optimizer{
		operator: op,
	}
}

// Optimize runs 4 sequential steps:
//  1. PRAGMA integrity_check
//  2. PRAGMA foreign_key_check
//  3. ANALYZE
//  4. VACUUM
func (o *optimizer) Optimize(
	ctx context.Context,
) (lifecycle.OptimizeStats, error) {
	var res lifecycle.OptimizeStats
	sqlDB := o.operator.DB()
	if sqlDB == nil {
		return res, iodb.NotConnectedError()
	}

	timeStart := time.Now()
	slog.Info("Starting database optimization", "path", o.operator.Path())

	var err error
	if res.SizeBefore, err = dbSize(ctx, sqlDB); err != nil {
		return res, VacuumError("PRAGMA page_count", err)
	}
	err = sqlDB.QueryRowContext(ctx, "PRAGMA freelist_count").Scan(&res.FreePages)
	if err != nil {
		return res, VacuumError("PRAGMA freelist_count", err)
	}

	slog.Info("Step 1/4: Checking integrity")
	if err = integrityCheck(ctx, sqlDB); err != nil {
		return res, err
	}

	slog.Info("Step 2/4: Checking foreign keys")
	if err = foreignKeyCheck(ctx, sqlDB); err != nil {
		return res, err
	}

	slog.Info("Step 3/4: Updating statistics")
	if _, err = sqlDB.ExecContext(ctx, "ANALYZE"); err != nil {
		return res, VacuumError("ANALYZE", err)
	}

	// VACUUM cannot run inside a transaction.
	slog.Info("Step 4/4: Compacting database file")
	if _, err = sqlDB.ExecContext(ctx, "VACUUM"); err != nil {
		return res, VacuumError("VACUUM", err)
	}

	if res.SizeAfter, err = dbSize(ctx, sqlDB); err != nil {
		return res, VacuumError("PRAGMA page_count", err)
	}

	slog.Info("Optimization complete",
		"size_before", humanize.Bytes(uint64(res.SizeBefore)),
		"size_after", humanize.Bytes(uint64(res.SizeAfter)),
		"free_pages", res.FreePages,
		"duration", gnfmt.TimeString(time.Since(timeStart).Seconds()),
	)
	return res, nil
}

// dbSize returns the size of the main database in bytes.
func dbSize(ctx context.Context, sqlDB *sql.DB) (int64, error) {
	var pages, pageSize int64
	err := sqlDB.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pages)
	if err != nil {
		return 0, err
	}
	err = sqlDB.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
	if err != nil {
		return 0, err
	}
	return pages * pageSize, nil
}

func integrityCheck(ctx context.Context, sqlDB *sql.DB) error {
	rows, err := sqlDB.QueryContext(ctx, "PRAGMA integrity_check")
	if err != nil {
		return IntegrityError(nil, err)
	}
	defer rows.Close()

	var problems []string
	for rows.Next() {
		var msg string
		if err = rows.Scan(&msg); err != nil {
			return IntegrityError(nil, err)
		}
		if msg != "ok" {
			problems = append(problems, msg)
		}
	}
	if err = rows.Err(); err != nil {
		return IntegrityError(nil, err)
	}
	if len(problems) > 0 {
		return IntegrityError(problems, nil)
	}
	return nil
}

// Violation is a row that refers to a missing parent row.
type Violation struct {
	Table  string
	RowID  int64
	Parent string
}

func foreignKeyCheck(ctx context.Context, sqlDB *sql.DB) error {
	res, err := violations(ctx, sqlDB)
	if err != nil {
		return ForeignKeyError(nil, err)
	}
	if len(res) > 0 {
		return ForeignKeyError(res, nil)
	}
	return nil
}

func violations(ctx context.Context, sqlDB *sql.DB) ([]Violation, error) {
	rows, err := sqlDB.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Violation
	for rows.Next() {
		var v Violation
		var rowID sql.NullInt64
		var fkID int
		if err = rows.Scan(&v.Table, &rowID, &v.Parent, &fkID); err != nil {
			return nil, err
		}
		v.RowID = rowID.Int64
		res = append(res, v)
	}
	return res, rows.Err()
}
