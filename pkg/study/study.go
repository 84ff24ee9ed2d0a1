// Package study defines the named read, update and delete operations of
// the study database together with the rows they return.
package study

import (
	"context"
	"database/sql"

	"github.com/biomed-study/biodb/pkg/schema"
)

// PatientOverview is a patient without demographic details.
type PatientOverview struct {
	PatientID      int64
	FullNameHash   string
	Age            sql.NullInt64
	EnrollmentDate string
}

// VisitReading is a systolic pressure reading of a patient visit.
type VisitReading struct {
	PatientID  int64
	VisitDate  string
	SystolicBP sql.NullInt64
}

// HypertensiveReading is a systolic reading above a threshold.
type HypertensiveReading struct {
	PatientID    int64
	FullNameHash string
	SystolicBP   int64
}

// Store runs the named operations against a connected database.
// Mutations are committed before they return.
type Store interface {
	// AllPatients lists every patient ordered by id.
	AllPatients(ctx context.Context) ([]PatientOverview, error)

	// VisitsForPatient lists visits of one patient ordered by date.
	VisitsForPatient(ctx context.Context, patientID int64) ([]VisitReading, error)

	// HypertensivePatients lists distinct readings with systolic pressure
	// strictly above threshold.
	HypertensivePatients(ctx context.Context, threshold int) ([]HypertensiveReading, error)

	// UpdateSampleLocation sets the storage location of a sample.
	UpdateSampleLocation(ctx context.Context, sampleID int64, location string) error

	// DeletePatient removes a patient. Visits and samples of the patient
	// are removed by the database cascade.
	DeletePatient(ctx context.Context, patientID int64) error

	// Patients returns all columns of all patients ordered by id.
	Patients(ctx context.Context) ([]schema.Patient, error)

	// Sample returns one sample by id.
	Sample(ctx context.Context, sampleID int64) (schema.Sample, error)

	// CountVisits returns the number of visits of a patient.
	CountVisits(ctx context.Context, patientID int64) (int, error)

	// CountSamples returns the number of samples of a patient.
	CountSamples(ctx context.Context, patientID int64) (int, error)
}
