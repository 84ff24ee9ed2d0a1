// Package schema provides database schema models for the study database.
// Table and column names follow the biomed_study.db layout.
package schema

import (
	"database/sql"
)

// DDLGenerator defines how Go models generate SQLite DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the SQLite table name for this model.
	TableName() string
}

// Table names.
const (
	PatientsTable       = "Patients"
	ClinicalVisitsTable = "Clinical_Visits"
	SamplesTable        = "Samples"
)

// Age limits of enrolled patients, inclusive.
const (
	MinAge = 18
	MaxAge = 90
)

// Genders are the values accepted by Patients.gender.
var Genders = []string{"Male", "Female", "Other"}

// SampleTypes are the values accepted by Samples.sample_type.
var SampleTypes = []string{"Blood", "Serum", "Plasma", "Urine"}

// Patient is a de-identified study participant.
type Patient struct {
	// ID is assigned by SQLite and never reused.
	ID int64 `db:"patient_id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT"`

	// FullNameHash is a hex SHA-256 digest of the patient's full name.
	// The plain name is never stored.
	FullNameHash string `db:"full_name_hash" ddl:"TEXT NOT NULL"`

	// Age at enrollment, from MinAge to MaxAge.
	Age sql.NullInt64 `db:"age" ddl:"INTEGER CHECK(age >= 18 AND age <= 90)"`

	// Gender is one of Genders.
	Gender sql.NullString `db:"gender" ddl:"TEXT CHECK(gender IN ('Male', 'Female', 'Other'))"`

	// EnrollmentDate is an ISO date (YYYY-MM-DD).
	EnrollmentDate string `db:"enrollment_date" ddl:"TEXT NOT NULL"`
}

// ClinicalVisit is a dated observation of a patient.
// Visits are removed together with their patient.
type ClinicalVisit struct {
	ID int64 `db:"visit_id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT"`

	PatientID int64 `db:"patient_id" ddl:"INTEGER NOT NULL REFERENCES Patients(patient_id) ON DELETE CASCADE"`

	// VisitDate is an ISO date (YYYY-MM-DD).
	VisitDate string `db:"visit_date" ddl:"TEXT NOT NULL"`

	// SystolicBP in mmHg.
	SystolicBP sql.NullInt64 `db:"systolic_bp" ddl:"INTEGER"`

	// DiastolicBP in mmHg.
	DiastolicBP sql.NullInt64 `db:"diastolic_bp" ddl:"INTEGER"`

	// BloodGlucose concentration in mmol/L.
	BloodGlucose sql.NullFloat64 `db:"blood_glucose_mmol_L" ddl:"REAL"`

	Notes sql.NullString `db:"notes" ddl:"TEXT"`
}

// Sample is a biological specimen collected from a patient.
// Samples are removed together with their patient.
type Sample struct {
	ID int64 `db:"sample_id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT"`

	PatientID int64 `db:"patient_id" ddl:"INTEGER NOT NULL REFERENCES Patients(patient_id) ON DELETE CASCADE"`

	// CollectionDate is an ISO date (YYYY-MM-DD).
	CollectionDate string `db:"collection_date" ddl:"TEXT NOT NULL"`

	// SampleType is one of SampleTypes.
	SampleType sql.NullString `db:"sample_type" ddl:"TEXT CHECK(sample_type IN ('Blood', 'Serum', 'Plasma', 'Urine'))"`

	// StorageLocation is a free-text freezer, fridge or rack label.
	StorageLocation sql.NullString `db:"storage_location" ddl:"TEXT"`
}
