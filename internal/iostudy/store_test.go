package iostudy_test

import (
	"context"
	"testing"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/internal/ioschema"
	"github.com/biomed-study/biodb/internal/ioseed"
	"github.com/biomed-study/biodb/internal/iostudy"
	"github.com/biomed-study/biodb/internal/iotesting"
	"github.com/biomed-study/biodb/pkg/deident"
	"github.com/biomed-study/biodb/pkg/errcode"
	"github.com/biomed-study/biodb/pkg/seed"
	"github.com/biomed-study/biodb/pkg/study"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededStore returns a store over a freshly seeded database.
func seededStore(t *testing.T) study.Store {
	t.Helper()
	ctx := context.Background()
	op := iotesting.ConnectTemp(t)

	require.NoError(t, ioschema.NewManager(op).Reset(ctx))
	data, err := seed.Default()
	require.NoError(t, err)
	_, err = ioseed.New(op, false).Seed(ctx, data)
	require.NoError(t, err)

	return iostudy.New(op)
}

func TestAllPatients(t *testing.T) {
	st := seededStore(t)

	res, err := st.AllPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 3)

	names := []string{"Ali Khan", "Sara Ahmed", "Usman Raza"}
	ages := []int64{45, 38, 60}
	dates := []string{"2025-01-10", "2025-01-15", "2025-01-20"}
	for i, v := range res {
		assert.Equal(t, int64(i+1), v.PatientID)
		assert.Equal(t, deident.HashText(names[i]), v.FullNameHash)
		assert.Equal(t, ages[i], v.Age.Int64)
		assert.Equal(t, dates[i], v.EnrollmentDate)
	}
}

func TestVisitsForPatient(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()

	res, err := st.VisitsForPatient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, "2025-02-01", res[0].VisitDate)
	assert.Equal(t, int64(150), res[0].SystolicBP.Int64)
	assert.Equal(t, "2025-03-01", res[1].VisitDate)
	assert.Equal(t, int64(142), res[1].SystolicBP.Int64)

	res, err = st.VisitsForPatient(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestVisitsForPatient_Orphans(t *testing.T) {
	ctx := context.Background()
	op := iotesting.ConnectTemp(t)
	require.NoError(t, ioschema.NewManager(op).Create(ctx))

	sqlDB := op.DB()
	_, err := sqlDB.Exec("PRAGMA foreign_keys = OFF")
	require.NoError(t, err)
	_, err = sqlDB.Exec(`INSERT INTO Clinical_Visits (patient_id, visit_date,
		systolic_bp) VALUES (9, '2025-02-01', 150)`)
	require.NoError(t, err)
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	res, err := iostudy.New(op).VisitsForPatient(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, res, "visits of a missing patient are not listed")
}

func TestHypertensivePatients(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()

	res, err := st.HypertensivePatients(ctx, 140)
	require.NoError(t, err)

	type triple struct {
		id  int64
		sys int64
	}
	var got []triple
	for _, v := range res {
		got = append(got, triple{v.PatientID, v.SystolicBP})
	}
	assert.Equal(t, []triple{{1, 150}, {1, 142}, {3, 160}}, got)
	assert.Equal(t, deident.HashText("Usman Raza"), res[2].FullNameHash)

	t.Run("threshold is exclusive", func(t *testing.T) {
		res, err := st.HypertensivePatients(ctx, 150)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, int64(3), res[0].PatientID)
	})

	t.Run("nothing above threshold", func(t *testing.T) {
		res, err := st.HypertensivePatients(ctx, 200)
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestUpdateSampleLocation(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()

	before, err := st.Sample(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Fridge A-03", before.StorageLocation.String)

	require.NoError(t, st.UpdateSampleLocation(ctx, 1, "Biobank Rack 7"))

	after, err := st.Sample(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Biobank Rack 7", after.StorageLocation.String)
	assert.Equal(t, before.CollectionDate, after.CollectionDate)
	assert.Equal(t, before.SampleType, after.SampleType)

	other, err := st.Sample(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Biobank Rack 5", other.StorageLocation.String)

	t.Run("missing sample", func(t *testing.T) {
		err := st.UpdateSampleLocation(ctx, 99, "Nowhere")
		require.Error(t, err)
		assert.Equal(t, errcode.StudyNotFoundError, err.(*gn.Error).Code)

		_, err = st.Sample(ctx, 99)
		require.Error(t, err)
		assert.Equal(t, errcode.StudyNotFoundError, err.(*gn.Error).Code)
	})
}

func TestDeletePatient(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()

	require.NoError(t, st.DeletePatient(ctx, 2))

	patients, err := st.Patients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, int64(1), patients[0].ID)
	assert.Equal(t, int64(3), patients[1].ID)
	assert.Equal(t, "Male", patients[1].Gender.String)

	tests := []struct {
		patientID int64
		visits    int
		samples   int
	}{
		{1, 2, 2},
		{2, 0, 0},
		{3, 1, 2},
	}
	for _, v := range tests {
		visits, err := st.CountVisits(ctx, v.patientID)
		require.NoError(t, err)
		assert.Equal(t, v.visits, visits, v.patientID)

		samples, err := st.CountSamples(ctx, v.patientID)
		require.NoError(t, err)
		assert.Equal(t, v.samples, samples, v.patientID)
	}

	t.Run("delete twice", func(t *testing.T) {
		err := st.DeletePatient(ctx, 2)
		require.Error(t, err)
		assert.Equal(t, errcode.StudyNotFoundError, err.(*gn.Error).Code)
	})
}

func TestStore_NotConnected(t *testing.T) {
	st := iostudy.New(iodb.NewSQLiteOperator())
	ctx := context.Background()

	_, err := st.AllPatients(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.DBNotConnectedError, err.(*gn.Error).Code)

	err = st.DeletePatient(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, errcode.DBNotConnectedError, err.(*gn.Error).Code)
}

func TestStore_NoTables(t *testing.T) {
	st := iostudy.New(iotesting.ConnectTemp(t))

	_, err := st.AllPatients(context.Background())
	require.Error(t, err)
	assert.Equal(t, errcode.StudyQueryError, err.(*gn.Error).Code)
}
