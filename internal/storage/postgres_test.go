package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewPostgresStore(db, "kv_store")
	require.NoError(t, err)
	return s, mock
}

func TestNewPostgresStore_RejectsBadTableName(t *testing.T) {
	_, err := NewPostgresStore(nil, "kv; DROP TABLE users")
	assert.Error(t, err)
}

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = $1`)

	t.Run("existing key", func(t *testing.T) {
		s, mock := newMockPostgresStore(t)
		mock.ExpectQuery(query).
			WithArgs("studentApplications").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":1}]`))

		v, err := s.Get(ctx, "studentApplications")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":1}]`, v)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key", func(t *testing.T) {
		s, mock := newMockPostgresStore(t)
		mock.ExpectQuery(query).
			WithArgs("studentApplications").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		_, err := s.Get(ctx, "studentApplications")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		s, mock := newMockPostgresStore(t)
		mock.ExpectQuery(query).
			WithArgs("studentApplications").
			WillReturnError(errors.New("connection reset"))

		_, err := s.Get(ctx, "studentApplications")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_SetAndRemove(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())`)).
		WithArgs("contactMessages", `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_store WHERE key = $1`)).
		WithArgs("contactMessages").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(ctx, "contactMessages", `[]`))
	require.NoError(t, s.Remove(ctx, "contactMessages"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS kv_store`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
