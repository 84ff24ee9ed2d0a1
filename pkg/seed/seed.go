// Package seed describes literal rows used to populate a fresh study
// database.
//
// Seed data is kept in YAML with three lists: patients, clinical_visits
// and samples. Visits and samples refer to patients by patient_id, which
// is the 1-based position of the patient in a freshly created schema.
// Optional columns are pointers, a missing value is stored as NULL.
package seed

import (
	"fmt"

	"github.com/biomed-study/biodb/pkg/templates"
	"gopkg.in/yaml.v3"
)

// Data contains all seed rows in insertion order.
type Data struct {
	Patients []Patient `yaml:"patients"`
	Visits   []Visit   `yaml:"clinical_visits"`
	Samples  []Sample  `yaml:"samples"`
}

// Patient is a seed row for the Patients table. FullName is hashed
// before it reaches the database.
type Patient struct {
	FullName       string  `yaml:"full_name"`
	Age            *int    `yaml:"age"`
	Gender         *string `yaml:"gender"`
	EnrollmentDate string  `yaml:"enrollment_date"`
}

// Visit is a seed row for the Clinical_Visits table.
type Visit struct {
	PatientID    int64    `yaml:"patient_id"`
	VisitDate    string   `yaml:"visit_date"`
	SystolicBP   *int     `yaml:"systolic_bp"`
	DiastolicBP  *int     `yaml:"diastolic_bp"`
	BloodGlucose *float64 `yaml:"blood_glucose_mmol_l"`
	Notes        *string  `yaml:"notes"`
}

// Sample is a seed row for the Samples table.
type Sample struct {
	PatientID       int64   `yaml:"patient_id"`
	CollectionDate  string  `yaml:"collection_date"`
	SampleType      *string `yaml:"sample_type"`
	StorageLocation *string `yaml:"storage_location"`
}

// Summary counts inserted rows per table.
type Summary struct {
	Patients int
	Visits   int
	Samples  int
}

// Total returns the number of all inserted rows.
func (s Summary) Total() int {
	return s.Patients + s.Visits + s.Samples
}

// String returns a one-line description of the summary.
func (s Summary) String() string {
	return fmt.Sprintf("%d patients, %d clinical visits, %d samples",
		s.Patients, s.Visits, s.Samples)
}

// Len returns the number of rows in the seed.
func (d *Data) Len() int {
	return len(d.Patients) + len(d.Visits) + len(d.Samples)
}

// Default returns the built-in seed: three patients with their visits
// and samples.
func Default() (*Data, error) {
	return Parse([]byte(templates.SeedYAML))
}

// Parse decodes seed data from YAML.
func Parse(data []byte) (*Data, error) {
	var res Data
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, ParseError(err)
	}
	return &res, nil
}

// Ptr returns a pointer to v. It is handy for building seed rows with
// optional columns in code.
func Ptr[T any](v T) *T {
	return &v
}
