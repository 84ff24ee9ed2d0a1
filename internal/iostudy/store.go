// Package iostudy implements study.Store on the SQLite study database.
package iostudy

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/pkg/db"
	"github.com/biomed-study/biodb/pkg/schema"
	"github.com/biomed-study/biodb/pkg/study"
)

type store struct {
	operator db.Operator
}

// New creates a study.Store that works through op.
func New(op db.Operator) study.Store {
	return &store{operator: op}
}

func (s *store) conn() (*sql.DB, error) {
	sqlDB := s.operator.DB()
	if sqlDB == nil {
		return nil, iodb.NotConnectedError()
	}
	return sqlDB, nil
}

// AllPatients lists every patient ordered by id.
func (s *store) AllPatients(
	ctx context.Context,
) ([]study.PatientOverview, error) {
	q := `
		SELECT patient_id, full_name_hash, age, enrollment_date
		FROM Patients
		ORDER BY patient_id`

	return query(ctx, s, "all patients", q, nil,
		func(rows *sql.Rows) (study.PatientOverview, error) {
			var p study.PatientOverview
			err := rows.Scan(&p.PatientID, &p.FullNameHash, &p.Age,
				&p.EnrollmentDate)
			return p, err
		})
}

// VisitsForPatient lists visits of a patient ordered by visit date.
func (s *store) VisitsForPatient(
	ctx context.Context,
	patientID int64,
) ([]study.VisitReading, error) {
	q := `
		SELECT p.patient_id, v.visit_date, v.systolic_bp
		FROM Patients p
		JOIN Clinical_Visits v ON p.patient_id = v.patient_id
		WHERE p.patient_id = ?
		ORDER BY v.visit_date, v.visit_id`

	return query(ctx, s, "patient visits", q, []any{patientID},
		func(rows *sql.Rows) (study.VisitReading, error) {
			var v study.VisitReading
			err := rows.Scan(&v.PatientID, &v.VisitDate, &v.SystolicBP)
			return v, err
		})
}

// HypertensivePatients lists distinct (patient, hash, reading) triples
// where the systolic reading is strictly above threshold. Rows are
// ordered by patient id and then by reading, highest first.
func (s *store) HypertensivePatients(
	ctx context.Context,
	threshold int,
) ([]study.HypertensiveReading, error) {
	q := `
		SELECT DISTINCT p.patient_id, p.full_name_hash, v.systolic_bp
		FROM Patients p
		JOIN Clinical_Visits v ON p.patient_id = v.patient_id
		WHERE v.systolic_bp > ?
		ORDER BY p.patient_id, v.systolic_bp DESC`

	return query(ctx, s, "hypertensive patients", q, []any{threshold},
		func(rows *sql.Rows) (study.HypertensiveReading, error) {
			var h study.HypertensiveReading
			err := rows.Scan(&h.PatientID, &h.FullNameHash, &h.SystolicBP)
			return h, err
		})
}

// UpdateSampleLocation sets the storage location of a sample.
func (s *store) UpdateSampleLocation(
	ctx context.Context,
	sampleID int64,
	location string,
) error {
	sqlDB, err := s.conn()
	if err != nil {
		return err
	}

	q := "UPDATE Samples SET storage_location = ? WHERE sample_id = ?"
	var affected int64
	err = iodb.Transaction(ctx, sqlDB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, location, sampleID)
		if err != nil {
			return UpdateError(schema.SamplesTable, sampleID, err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return UpdateError(schema.SamplesTable, sampleID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFoundError("sample", sampleID)
	}

	slog.Info("Sample location updated",
		"sample_id", sampleID, "location", location)
	return nil
}

// DeletePatient removes a patient with all visits and samples.
func (s *store) DeletePatient(
	ctx context.Context,
	patientID int64,
) error {
	sqlDB, err := s.conn()
	if err != nil {
		return err
	}

	q := "DELETE FROM Patients WHERE patient_id = ?"
	var affected int64
	err = iodb.Transaction(ctx, sqlDB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, patientID)
		if err != nil {
			return DeleteError(patientID, err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return DeleteError(patientID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFoundError("patient", patientID)
	}

	slog.Info("Patient deleted", "patient_id", patientID)
	return nil
}

// Patients returns every column of every patient ordered by id.
func (s *store) Patients(ctx context.Context) ([]schema.Patient, error) {
	q := `
		SELECT patient_id, full_name_hash, age, gender, enrollment_date
		FROM Patients
		ORDER BY patient_id`

	return query(ctx, s, "patients", q, nil,
		func(rows *sql.Rows) (schema.Patient, error) {
			var p schema.Patient
			err := rows.Scan(&p.ID, &p.FullNameHash, &p.Age, &p.Gender,
				&p.EnrollmentDate)
			return p, err
		})
}

// Sample returns one sample by id.
func (s *store) Sample(
	ctx context.Context,
	sampleID int64,
) (schema.Sample, error) {
	var res schema.Sample
	sqlDB, err := s.conn()
	if err != nil {
		return res, err
	}

	q := `
		SELECT sample_id, patient_id, collection_date, sample_type,
			storage_location
		FROM Samples
		WHERE sample_id = ?`

	err = sqlDB.QueryRowContext(ctx, q, sampleID).Scan(
		&res.ID, &res.PatientID, &res.CollectionDate, &res.SampleType,
		&res.StorageLocation,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return res, NotFoundError("sample", sampleID)
	}
	if err != nil {
		return res, QueryError("sample", err)
	}
	return res, nil
}

// CountVisits returns the number of visits of a patient.
func (s *store) CountVisits(
	ctx context.Context,
	patientID int64,
) (int, error) {
	q := "SELECT count(*) FROM Clinical_Visits WHERE patient_id = ?"
	return s.count(ctx, "visit count", q, patientID)
}

// CountSamples returns the number of samples of a patient.
func (s *store) CountSamples(
	ctx context.Context,
	patientID int64,
) (int, error) {
	q := "SELECT count(*) FROM Samples WHERE patient_id = ?"
	return s.count(ctx, "sample count", q, patientID)
}

func (s *store) count(
	ctx context.Context,
	name, q string,
	patientID int64,
) (int, error) {
	sqlDB, err := s.conn()
	if err != nil {
		return 0, err
	}

	var res int
	if err = sqlDB.QueryRowContext(ctx, q, patientID).Scan(&res); err != nil {
		return 0, QueryError(name, err)
	}
	return res, nil
}

// query runs a SELECT and scans every row with scan.
func query[T any](
	ctx context.Context,
	s *store,
	name, q string,
	args []any,
	scan func(*sql.Rows) (T, error),
) ([]T, error) {
	sqlDB, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := sqlDB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError(name, err)
	}
	defer rows.Close()

	var res []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, QueryError(name, err)
		}
		res = append(res, item)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(name, err)
	}

	slog.Debug("Query finished", "query", name, "rows", len(res))
	return res, nil
}
