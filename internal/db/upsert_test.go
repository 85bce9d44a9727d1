package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkUpsertEmptyRows(t *testing.T) {
	n, err := BulkUpsert(context.TODO(), nil, UpsertConfig{
		Table:        "dive_points",
		Columns:      []string{"a"},
		ConflictKeys: []string{"a"},
	}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestBulkUpsertValidation(t *testing.T) {
	rows := [][]any{{1}}

	_, err := BulkUpsert(context.TODO(), nil, UpsertConfig{Table: "t", ConflictKeys: []string{"a"}}, rows)
	assert.Error(t, err)

	_, err = BulkUpsert(context.TODO(), nil, UpsertConfig{Table: "t", Columns: []string{"a"}}, rows)
	assert.Error(t, err)
}

func TestBulkUpsertSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	columns := []string{"region", "zone", "area", "name", "method"}

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TEMP TABLE").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_dive_points"}, columns).
		WillReturnResult(2)
	mock.ExpectExec("INSERT INTO").
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	rows := [][]any{
		{"Japan", "Okinawa", "Onna", "Blue Cave", "gen-batch-v1"},
		{"Japan", "Okinawa", "Onna", "Manza Dream Hole", "gen-batch-v1"},
	}
	n, err := BulkUpsert(context.Background(), mock, UpsertConfig{
		Table:        "dive_points",
		Columns:      columns,
		ConflictKeys: []string{"region", "zone", "area", "name"},
	}, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsertMergeError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	columns := []string{"name"}

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TEMP TABLE").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_t"}, columns).
		WillReturnResult(1)
	mock.ExpectExec("INSERT INTO").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err = BulkUpsert(context.Background(), mock, UpsertConfig{
		Table:        "t",
		Columns:      columns,
		ConflictKeys: []string{"name"},
	}, [][]any{{"x"}})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
