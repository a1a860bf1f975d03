package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "admissions:"), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newMiniredisStore(t)

	_, err := s.Get(ctx, "contactMessages")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "contactMessages", `[{"id":7}]`))
	raw, err := mr.Get("admissions:contactMessages")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":7}]`, raw)

	v, err := s.Get(ctx, "contactMessages")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":7}]`, v)

	require.NoError(t, s.Remove(ctx, "contactMessages"))
	assert.False(t, mr.Exists("admissions:contactMessages"))
}

func TestRedisStore_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("get failure is wrapped", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet("studentApplications").SetErr(errors.New("connection refused"))

		_, err := NewRedisStore(client, "").Get(ctx, "studentApplications")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil reply maps to not found", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet("studentApplications").RedisNil()

		_, err := NewRedisStore(client, "").Get(ctx, "studentApplications")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set failure is wrapped", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectSet("studentApplications", "[]", 0).SetErr(errors.New("READONLY"))

		err := NewRedisStore(client, "").Set(ctx, "studentApplications", "[]")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "READONLY")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
