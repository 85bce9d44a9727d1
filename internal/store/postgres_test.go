package store

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestPostgresMigrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS dive_points").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCountPoints(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

	count, err := s.CountPoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListMethods(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT method, COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"method", "count"}).
			AddRow("gen-batch-v1", 40).
			AddRow("manual-import", 2))

	methods, err := s.ListMethods(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"gen-batch-v1": 40, "manual-import": 2}, methods)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStaleIDs(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id FROM dive_points WHERE method").
		WithArgs("gen-batch-v1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("a").AddRow("b"))

	ids, err := s.StaleIDs(context.Background(), "gen-batch-v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeletePoints(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM dive_points").
		WithArgs([]string{"a", "b"}).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	n, err := s.DeletePoints(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeletePointsEmpty(t *testing.T) {
	s, mock := newMockStore(t)

	n, err := s.DeletePoints(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpsertEmpty(t *testing.T) {
	s, mock := newMockStore(t)

	n, err := s.UpsertPoints(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
