package report_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"

	"github.com/biomed-study/biodb/pkg/report"
	"github.com/biomed-study/biodb/pkg/schema"
	"github.com/biomed-study/biodb/pkg/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuple(t *testing.T) {
	tests := []struct {
		msg  string
		vals []any
		res  string
	}{
		{"visit reading", []any{int64(1), "2025-02-01", int64(150)},
			"(1, '2025-02-01', 150)"},
		{"single value", []any{int64(7)}, "(7,)"},
		{"empty", nil, "()"},
		{"null values", []any{sql.NullInt64{}, sql.NullString{}}, "(None, None)"},
		{"valid nulls", []any{
			sql.NullInt64{Int64: 45, Valid: true},
			sql.NullString{String: "Male", Valid: true},
			sql.NullFloat64{Float64: 8.2, Valid: true},
		}, "(45, 'Male', 8.2)"},
		{"whole float keeps decimal point", []any{7.0}, "(7.0,)"},
		{"single quote switches to double quotes", []any{"O'Brien"},
			`("O'Brien",)`},
		{"both quotes escaped", []any{`it's "x"`}, `('it\'s "x"',)`},
		{"booleans", []any{true, false}, "(True, False)"},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, report.Tuple(v.vals...), v.msg)
	}
}

func TestNewFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "tuple", report.New(&buf, "").Format())
	assert.Equal(t, "tuple", report.New(&buf, "csv").Format())
	assert.Equal(t, "json", report.New(&buf, "json").Format())
	assert.Equal(t, "pretty", report.New(&buf, "pretty").Format())
}

func TestRowsTuple(t *testing.T) {
	var buf bytes.Buffer
	w := report.New(&buf, "tuple")

	rows := []study.VisitReading{
		{PatientID: 1, VisitDate: "2025-02-01",
			SystolicBP: sql.NullInt64{Int64: 150, Valid: true}},
		{PatientID: 1, VisitDate: "2025-03-01",
			SystolicBP: sql.NullInt64{Int64: 142, Valid: true}},
	}
	w.Line("Visits for Patient ID = 1:")
	require.NoError(t, report.Rows(w, rows))
	w.Separator()

	exp := "Visits for Patient ID = 1:\n" +
		"(1, '2025-02-01', 150)\n" +
		"(1, '2025-03-01', 142)\n" +
		"\n--------------------------\n\n"
	assert.Equal(t, exp, buf.String())
}

func TestRowsPatient(t *testing.T) {
	var buf bytes.Buffer
	w := report.New(&buf, "tuple")

	rows := []schema.Patient{
		{
			ID:             3,
			FullNameHash:   "abc",
			Age:            sql.NullInt64{Int64: 60, Valid: true},
			Gender:         sql.NullString{String: "Male", Valid: true},
			EnrollmentDate: "2025-01-20",
		},
	}
	require.NoError(t, report.Rows(w, rows))
	assert.Equal(t, "(3, 'abc', 60, 'Male', '2025-01-20')\n", buf.String())
}

func TestRowsJSON(t *testing.T) {
	var buf bytes.Buffer
	w := report.New(&buf, "json")

	rows := []study.PatientOverview{
		{PatientID: 2, FullNameHash: "hash", EnrollmentDate: "2025-01-15"},
	}
	require.NoError(t, report.Rows(w, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var obj map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &obj))
	assert.Equal(t, float64(2), obj["patient_id"])
	assert.Equal(t, "hash", obj["full_name_hash"])
	assert.Nil(t, obj["age"])
	assert.Equal(t, "2025-01-15", obj["enrollment_date"])
}

func TestLinef(t *testing.T) {
	var buf bytes.Buffer
	w := report.New(&buf, "tuple")
	w.Linef("Visits for Patient ID = %d:", 3)
	assert.Equal(t, "Visits for Patient ID = 3:\n", buf.String())
}
