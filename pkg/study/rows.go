package study

// Columns returns names of the overview columns.
func (p PatientOverview) Columns() []string {
	return []string{"patient_id", "full_name_hash", "age", "enrollment_date"}
}

// Values returns the overview columns in select order.
func (p PatientOverview) Values() []any {
	return []any{p.PatientID, p.FullNameHash, p.Age, p.EnrollmentDate}
}

// Columns returns names of the reading columns.
func (v VisitReading) Columns() []string {
	return []string{"patient_id", "visit_date", "systolic_bp"}
}

// Values returns the reading columns in select order.
func (v VisitReading) Values() []any {
	return []any{v.PatientID, v.VisitDate, v.SystolicBP}
}

// Columns returns names of the reading columns.
func (h HypertensiveReading) Columns() []string {
	return []string{"patient_id", "full_name_hash", "systolic_bp"}
}

// Values returns the reading columns in select order.
func (h HypertensiveReading) Values() []any {
	return []any{h.PatientID, h.FullNameHash, h.SystolicBP}
}
