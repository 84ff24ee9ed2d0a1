package ioschema_test

import (
	"context"
	"testing"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/internal/ioschema"
	"github.com/biomed-study/biodb/internal/iotesting"
	"github.com/biomed-study/biodb/pkg/errcode"
	"github.com/biomed-study/biodb/pkg/lifecycle"
	"github.com/biomed-study/biodb/pkg/schema"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestManager_ImplementsInterface verifies manager
// implements lifecycle.SchemaManager interface.
func TestManager_ImplementsInterface(t *testing.T) {
	op := iodb.NewSQLiteOperator()
	var _ lifecycle.SchemaManager = ioschema.NewManager(op)
}

func TestManager_NotConnected(t *testing.T) {
	sm := ioschema.NewManager(iodb.NewSQLiteOperator())
	ctx := context.Background()

	err := sm.Create(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.DBNotConnectedError, err.(*gn.Error).Code)

	err = sm.Drop(ctx)
	require.Error(t, err)
}

func TestManager_Create(t *testing.T) {
	op := iotesting.ConnectTemp(t)
	sm := ioschema.NewManager(op)
	ctx := context.Background()

	require.NoError(t, sm.Create(ctx))

	for _, table := range schema.TableNames() {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}

	var idxCount int
	err := op.DB().QueryRow(`SELECT count(*) FROM sqlite_master
		WHERE type = 'index' AND name LIKE 'idx_%'`).Scan(&idxCount)
	require.NoError(t, err)
	assert.Equal(t, 2, idxCount)

	t.Run("second create fails", func(t *testing.T) {
		err := sm.Create(ctx)
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.SchemaCreateError, gnErr.Code)
		assert.Equal(t, []any{"Patients"}, gnErr.Vars)
	})
}

func TestManager_Drop(t *testing.T) {
	op := iotesting.ConnectTemp(t)
	sm := ioschema.NewManager(op)
	ctx := context.Background()

	// dropping missing tables is not an error
	require.NoError(t, sm.Drop(ctx))

	require.NoError(t, sm.Create(ctx))
	_, err := op.DB().Exec(`INSERT INTO Patients
		(full_name_hash, age, gender, enrollment_date)
		VALUES ('h', 30, 'Other', '2025-01-01')`)
	require.NoError(t, err)
	_, err = op.DB().Exec(`INSERT INTO Samples
		(patient_id, collection_date, sample_type, storage_location)
		VALUES (1, '2025-01-02', 'Blood', 'Fridge')`)
	require.NoError(t, err)

	require.NoError(t, sm.Drop(ctx))

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has, "Only sqlite internal tables may remain")
}

func TestManager_Reset(t *testing.T) {
	op := iotesting.ConnectTemp(t)
	sm := ioschema.NewManager(op)
	ctx := context.Background()

	require.NoError(t, sm.Reset(ctx))

	insert := `INSERT INTO Patients
		(full_name_hash, age, gender, enrollment_date)
		VALUES ('h', 30, 'Other', '2025-01-01')`
	_, err := op.DB().Exec(insert)
	require.NoError(t, err)
	_, err = op.DB().Exec(insert)
	require.NoError(t, err)

	require.NoError(t, sm.Reset(ctx), "Reset must be repeatable")

	count, err := op.RowCount(ctx, schema.PatientsTable)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// identifiers start from 1 again after reset
	res, err := op.DB().Exec(insert)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestManager_Constraints(t *testing.T) {
	op := iotesting.ConnectTemp(t)
	sm := ioschema.NewManager(op)
	require.NoError(t, sm.Create(context.Background()))

	tests := []struct {
		msg   string
		query string
		kind  iodb.ConstraintKind
	}{
		{"age below range", `INSERT INTO Patients (full_name_hash, age, gender, enrollment_date)
			VALUES ('h', 17, 'Male', '2025-01-01')`, iodb.CheckConstraint},
		{"age above range", `INSERT INTO Patients (full_name_hash, age, gender, enrollment_date)
			VALUES ('h', 91, 'Male', '2025-01-01')`, iodb.CheckConstraint},
		{"unknown gender", `INSERT INTO Patients (full_name_hash, age, gender, enrollment_date)
			VALUES ('h', 30, 'male', '2025-01-01')`, iodb.CheckConstraint},
		{"missing hash", `INSERT INTO Patients (age, gender, enrollment_date)
			VALUES (30, 'Male', '2025-01-01')`, iodb.NotNullConstraint},
		{"visit of missing patient", `INSERT INTO Clinical_Visits (patient_id, visit_date)
			VALUES (99, '2025-01-01')`, iodb.ForeignKeyConstraint},
		{"sample of missing patient", `INSERT INTO Samples (patient_id, collection_date, sample_type)
			VALUES (99, '2025-01-01', 'Blood')`, iodb.ForeignKeyConstraint},
	}

	for _, v := range tests {
		_, err := op.DB().Exec(v.query)
		require.Error(t, err, v.msg)
		assert.Equal(t, v.kind, iodb.Constraint(err), v.msg)
	}

	// boundary ages are accepted
	for _, age := range []int{schema.MinAge, schema.MaxAge} {
		_, err := op.DB().Exec(`INSERT INTO Patients
			(full_name_hash, age, gender, enrollment_date)
			VALUES ('h', ?, 'Female', '2025-01-01')`, age)
		assert.NoError(t, err, age)
	}

	_, err := op.DB().Exec(`INSERT INTO Samples (patient_id, collection_date, sample_type)
		VALUES (1, '2025-01-01', 'Saliva')`)
	require.Error(t, err)
	assert.Equal(t, iodb.CheckConstraint, iodb.Constraint(err))
}
