package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// AllModels returns schema models in creation order: a table always
// comes after the tables it references.
func AllModels() []DDLGenerator {
	return []DDLGenerator{
		Patient{},
		ClinicalVisit{},
		Sample{},
	}
}

// TableNames returns names of all tables in creation order.
func TableNames() []string {
	models := AllModels()
	res := make([]string, len(models))
	for i, v := range models {
		res[i] = v.TableName()
	}
	return res
}

// Columns returns column names of a model in declaration order.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var res []string
	for i := 0; i < t.NumField(); i++ {
		if dbTag := t.Field(i).Tag.Get("db"); dbTag != "" {
			res = append(res, dbTag)
		}
	}
	return res
}

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Patient DDL methods
func (p Patient) TableDDL() string {
	return generateDDL(p, PatientsTable)
}

func (p Patient) IndexDDL() []string {
	return []string{}
}

func (p Patient) TableName() string {
	return PatientsTable
}

// ClinicalVisit DDL methods
func (cv ClinicalVisit) TableDDL() string {
	return generateDDL(cv, ClinicalVisitsTable)
}

func (cv ClinicalVisit) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_clinical_visits_patient_id ON Clinical_Visits(patient_id);",
	}
}

func (cv ClinicalVisit) TableName() string {
	return ClinicalVisitsTable
}

// Sample DDL methods
func (s Sample) TableDDL() string {
	return generateDDL(s, SamplesTable)
}

func (s Sample) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_samples_patient_id ON Samples(patient_id);",
	}
}

func (s Sample) TableName() string {
	return SamplesTable
}
