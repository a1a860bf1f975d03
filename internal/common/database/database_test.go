package database

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"admissions-workers/internal/common/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Backend = (*Postgres)(nil)
	_ Backend = (*Redis)(nil)
	_ Backend = (*Elasticsearch)(nil)
)

func TestPostgres_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	pg := WrapPostgres(db, config.PostgresConfig{MaxConnections: 4, MaxIdle: 1})
	assert.Equal(t, "postgres", pg.Name())

	mock.ExpectPing()
	assert.NoError(t, pg.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.ErrorContains(t, pg.Ping(context.Background()), "postgres ping failed")

	mock.ExpectClose()
	assert.NoError(t, pg.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer rdb.Close()

	assert.Equal(t, "redis", rdb.Name())
	assert.NoError(t, rdb.Ping(context.Background()))

	mr.Close()
	assert.ErrorContains(t, rdb.Ping(context.Background()), "redis ping failed")
}

func TestNewRedis_EmptyAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}

func TestElasticsearch_Ping(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	es, err := NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "elasticsearch", es.Name())
	assert.NoError(t, es.Ping(context.Background()))

	healthy = false
	assert.ErrorContains(t, es.Ping(context.Background()), "elasticsearch ping error")
	assert.NoError(t, es.Close())
}

func TestNewElasticsearch_NoAddress(t *testing.T) {
	_, err := NewElasticsearch(config.ElasticsearchConfig{})
	assert.Error(t, err)
}
