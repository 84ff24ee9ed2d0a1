package schema

// Columns returns all column names of Patients.
func (p Patient) Columns() []string {
	return Columns(p)
}

// Values returns all columns of the patient in table order.
func (p Patient) Values() []any {
	return []any{p.ID, p.FullNameHash, p.Age, p.Gender, p.EnrollmentDate}
}

// Columns returns all column names of Samples.
func (s Sample) Columns() []string {
	return Columns(s)
}

// Values returns all columns of the sample in table order.
func (s Sample) Values() []any {
	return []any{s.ID, s.PatientID, s.CollectionDate, s.SampleType,
		s.StorageLocation}
}
