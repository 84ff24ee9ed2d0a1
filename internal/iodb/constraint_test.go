package iodb_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/internal/iotesting"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraint(t *testing.T) {
	op := iotesting.ConnectTemp(t)
	sqlDB := op.DB()

	ddl := []string{
		`CREATE TABLE Parents (
			id INTEGER PRIMARY KEY,
			code TEXT UNIQUE,
			score INTEGER CHECK(score >= 0)
		)`,
		`CREATE TABLE Children (
			id INTEGER PRIMARY KEY,
			parent_id INTEGER NOT NULL REFERENCES Parents(id) ON DELETE CASCADE
		)`,
		`INSERT INTO Parents (id, code, score) VALUES (1, 'a', 1)`,
	}
	for _, q := range ddl {
		_, err := sqlDB.Exec(q)
		require.NoError(t, err)
	}

	tests := []struct {
		msg   string
		query string
		kind  iodb.ConstraintKind
	}{
		{"check", `INSERT INTO Parents (code, score) VALUES ('b', -1)`,
			iodb.CheckConstraint},
		{"foreign key", `INSERT INTO Children (parent_id) VALUES (42)`,
			iodb.ForeignKeyConstraint},
		{"not null", `INSERT INTO Children (parent_id) VALUES (NULL)`,
			iodb.NotNullConstraint},
		{"unique", `INSERT INTO Parents (code, score) VALUES ('a', 2)`,
			iodb.UniqueConstraint},
	}

	for _, v := range tests {
		_, err := sqlDB.Exec(v.query)
		require.Error(t, err, v.msg)
		assert.Equal(t, v.kind, iodb.Constraint(err), v.msg)
		assert.True(t, iodb.IsConstraintViolation(err), v.msg)

		wrapped := fmt.Errorf("outer: %w", err)
		assert.Equal(t, v.kind, iodb.Constraint(wrapped), v.msg)

		gnErr := &gn.Error{Msg: "wrapped", Err: wrapped}
		assert.Equal(t, v.kind, iodb.Constraint(gnErr), v.msg)
	}
}

func TestConstraint_NotSQLite(t *testing.T) {
	assert.Equal(t, iodb.NoConstraint, iodb.Constraint(nil))
	assert.Equal(t, iodb.NoConstraint, iodb.Constraint(errors.New("plain")))
	assert.False(t, iodb.IsConstraintViolation(errors.New("plain")))
}

func TestConstraint_SyntaxError(t *testing.T) {
	op := iotesting.ConnectTemp(t)
	_, err := op.DB().Exec(`CREATE TABLE Broken (id INTEGER x y z ( )`)
	require.Error(t, err)
	assert.False(t, iodb.IsConstraintViolation(err))
}

func TestConstraintKind_String(t *testing.T) {
	assert.Equal(t, "check", iodb.CheckConstraint.String())
	assert.Equal(t, "foreign key", iodb.ForeignKeyConstraint.String())
	assert.Equal(t, "not null", iodb.NotNullConstraint.String())
	assert.Equal(t, "unique", iodb.UniqueConstraint.String())
	assert.Equal(t, "none", iodb.NoConstraint.String())
}
