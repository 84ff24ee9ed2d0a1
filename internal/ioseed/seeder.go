// Package ioseed implements the Seeder interface. It inserts seed rows
// into the study tables and loads seed files from disk.
package ioseed

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/pkg/db"
	"github.com/biomed-study/biodb/pkg/deident"
	"github.com/biomed-study/biodb/pkg/lifecycle"
	"github.com/biomed-study/biodb/pkg/schema"
	"github.com/biomed-study/biodb/pkg/seed"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
)

const (
	insertPatient = `INSERT INTO Patients
		(full_name_hash, age, gender, enrollment_date)
		VALUES (?, ?, ?, ?)`

	insertVisit = `INSERT INTO Clinical_Visits
		(patient_id, visit_date, systolic_bp, diastolic_bp,
		 blood_glucose_mmol_L, notes)
		VALUES (?, ?, ?, ?, ?, ?)`

	insertSample = `INSERT INTO Samples
		(patient_id, collection_date, sample_type, storage_location)
		VALUES (?, ?, ?, ?)`
)

type seeder struct {
	operator     db.Operator
	showProgress bool
}

// New creates a Seeder. When showProgress is true a progress bar is
// drawn on stderr while rows are inserted.
func New(op db.Operator, showProgress bool) lifecycle.Seeder {
	return &seeder{operator: op, showProgress: showProgress}
}

// Seed inserts patients, then visits, then samples in one transaction.
func (s *seeder) Seed(
	ctx context.Context,
	data *seed.Data,
) (seed.Summary, error) {
	var res seed.Summary

	sqlDB := s.operator.DB()
	if sqlDB == nil {
		return res, iodb.NotConnectedError()
	}

	var bar *pb.ProgressBar
	if s.showProgress {
		bar = pb.Full.Start(data.Len())
		bar.Set("prefix", "Seeding study data: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	err := iodb.Transaction(ctx, sqlDB, func(tx *sql.Tx) error {
		var err error
		if res.Patients, err = insertPatients(ctx, tx, data.Patients, bar); err != nil {
			return err
		}
		if res.Visits, err = insertVisits(ctx, tx, data.Visits, bar); err != nil {
			return err
		}
		res.Samples, err = insertSamples(ctx, tx, data.Samples, bar)
		return err
	})
	if err != nil {
		return seed.Summary{}, err
	}

	slog.Info("Seed data inserted",
		"patients", humanize.Comma(int64(res.Patients)),
		"visits", humanize.Comma(int64(res.Visits)),
		"samples", humanize.Comma(int64(res.Samples)),
	)
	return res, nil
}

func insertPatients(
	ctx context.Context,
	tx *sql.Tx,
	rows []seed.Patient,
	bar *pb.ProgressBar,
) (int, error) {
	stmt, err := tx.PrepareContext(ctx, insertPatient)
	if err != nil {
		return 0, InsertError(schema.PatientsTable, 0, err)
	}
	defer stmt.Close()

	for i, v := range rows {
		_, err = stmt.ExecContext(ctx,
			deident.HashText(v.FullName),
			nullable(v.Age),
			nullable(v.Gender),
			v.EnrollmentDate,
		)
		if err != nil {
			return i, InsertError(schema.PatientsTable, i, err)
		}
		tick(bar)
	}
	return len(rows), nil
}

func insertVisits(
	ctx context.Context,
	tx *sql.Tx,
	rows []seed.Visit,
	bar *pb.ProgressBar,
) (int, error) {
	stmt, err := tx.PrepareContext(ctx, insertVisit)
	if err != nil {
		return 0, InsertError(schema.ClinicalVisitsTable, 0, err)
	}
	defer stmt.Close()

	for i, v := range rows {
		_, err = stmt.ExecContext(ctx,
			v.PatientID,
			v.VisitDate,
			nullable(v.SystolicBP),
			nullable(v.DiastolicBP),
			nullable(v.BloodGlucose),
			nullable(v.Notes),
		)
		if err != nil {
			return i, InsertError(schema.ClinicalVisitsTable, i, err)
		}
		tick(bar)
	}
	return len(rows), nil
}

func insertSamples(
	ctx context.Context,
	tx *sql.Tx,
	rows []seed.Sample,
	bar *pb.ProgressBar,
) (int, error) {
	stmt, err := tx.PrepareContext(ctx, insertSample)
	if err != nil {
		return 0, InsertError(schema.SamplesTable, 0, err)
	}
	defer stmt.Close()

	for i, v := range rows {
		_, err = stmt.ExecContext(ctx,
			v.PatientID,
			v.CollectionDate,
			nullable(v.SampleType),
			nullable(v.StorageLocation),
		)
		if err != nil {
			return i, InsertError(schema.SamplesTable, i, err)
		}
		tick(bar)
	}
	return len(rows), nil
}

func tick(bar *pb.ProgressBar) {
	if bar != nil {
		bar.Increment()
	}
}

// nullable turns a nil pointer into SQL NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

// LoadFile reads seed data from a YAML file.
func LoadFile(path string) (*seed.Data, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	res, err := seed.Parse(bs)
	if err != nil {
		return nil, err
	}
	slog.Debug("Seed file loaded", "path", path, "rows", res.Len())
	return res, nil
}
