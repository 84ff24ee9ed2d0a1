package iodb_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/internal/iotesting"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/biomed-study/biodb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteOperator_Connect(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	op := iodb.NewSQLiteOperator()
	ctx := context.Background()

	err := op.Connect(ctx, &cfg.Database)
	require.NoError(t, err, "Connect should succeed with valid config")
	defer op.Close()

	require.NotNil(t, op.DB())
	assert.Equal(t, cfg.Database.Path, op.Path())

	_, err = os.Stat(cfg.Database.Path)
	assert.NoError(t, err, "Database file should be created")

	exists, err := op.TableExists(ctx, "nonexistent_table")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteOperator_SingleConnection(t *testing.T) {
	op := iotesting.ConnectTemp(t)
	stats := op.DB().Stats()
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestSQLiteOperator_ForeignKeysEnabled(t *testing.T) {
	op := iotesting.ConnectTemp(t)

	var on int
	err := op.DB().QueryRow("PRAGMA foreign_keys").Scan(&on)
	require.NoError(t, err)
	assert.Equal(t, 1, on)
}

func TestSQLiteOperator_Connect_MissingDir(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath(filepath.Join(dir, "no", "such", "dir", "x.db")),
	})

	op := iodb.NewSQLiteOperator()
	err := op.Connect(context.Background(), &cfg.Database)
	require.Error(t, err)
	assert.Nil(t, op.DB())

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "x.db")
}

func TestSQLiteOperator_NotConnected(t *testing.T) {
	op := iodb.NewSQLiteOperator()
	ctx := context.Background()

	_, err := op.TableExists(ctx, "Patients")
	require.Error(t, err)
	assert.Equal(t, errcode.DBNotConnectedError, err.(*gn.Error).Code)

	_, err = op.HasTables(ctx)
	require.Error(t, err)

	_, err = op.RowCount(ctx, "Patients")
	require.Error(t, err)
}

func TestSQLiteOperator_CloseTwice(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Connect(context.Background(), &cfg.Database))

	assert.NoError(t, op.Close())
	assert.Nil(t, op.DB())
	assert.NoError(t, op.Close(), "Second Close should be a no-op")
}

func TestSQLiteOperator_Tables(t *testing.T) {
	op := iotesting.ConnectTemp(t)
	ctx := context.Background()

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has, "Fresh database has no tables")

	_, err = op.DB().Exec(`CREATE TABLE Things (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)`)
	require.NoError(t, err)
	_, err = op.DB().Exec(`INSERT INTO Things (name) VALUES ('a'), ('b')`)
	require.NoError(t, err)

	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	exists, err := op.TableExists(ctx, "Things")
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := op.RowCount(ctx, "Things")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = op.RowCount(ctx, "Missing")
	require.Error(t, err)
	assert.Equal(t, errcode.DBRowCountError, err.(*gn.Error).Code)
}

func TestTransaction(t *testing.T) {
	op := iotesting.ConnectTemp(t)
	ctx := context.Background()
	sqlDB := op.DB()

	_, err := sqlDB.Exec(`CREATE TABLE Things (name TEXT NOT NULL)`)
	require.NoError(t, err)

	t.Run("commits on success", func(t *testing.T) {
		err := iodb.Transaction(ctx, sqlDB, func(tx *sql.Tx) error {
			_, err := tx.Exec(`INSERT INTO Things (name) VALUES ('kept')`)
			return err
		})
		require.NoError(t, err)

		count, err := op.RowCount(ctx, "Things")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		err := iodb.Transaction(ctx, sqlDB, func(tx *sql.Tx) error {
			if _, err := tx.Exec(`INSERT INTO Things (name) VALUES ('lost')`); err != nil {
				return err
			}
			_, err := tx.Exec(`INSERT INTO Things (name) VALUES (NULL)`)
			return err
		})
		require.Error(t, err)
		assert.Equal(t, iodb.NotNullConstraint, iodb.Constraint(err))

		count, err := op.RowCount(ctx, "Things")
		require.NoError(t, err)
		assert.Equal(t, 1, count, "Failed transaction must leave no rows")
	})

	t.Run("requires connection", func(t *testing.T) {
		err := iodb.Transaction(ctx, nil, func(*sql.Tx) error { return nil })
		require.Error(t, err)
	})
}
