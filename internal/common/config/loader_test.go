package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
workers:
  submit-application:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.Equal(t, "studentApplications", cfg.Storage.ApplicationsKey)
	assert.Equal(t, "contactMessages", cfg.Storage.ContactMessagesKey)
	assert.Equal(t, "Excellence University", cfg.Institution.Name)
	assert.Equal(t, "Admission Application Form", cfg.Institution.FormTitle)
	assert.Equal(t, DownloadsLocal, cfg.Downloads.Backend)
	assert.Equal(t, "student_applications.csv", cfg.Export.Filename)
	assert.Equal(t, "1/2/2006", cfg.Export.DateLayout)
	assert.Equal(t, "+1", cfg.Notifications.SMS.CountryCode)
	assert.Equal(t, ":8080", cfg.App.HealthAddr)

	worker := cfg.Workers["submit-application"]
	assert.True(t, worker.Enabled)
	assert.Equal(t, 5, worker.MaxJobsActive)
	assert.Equal(t, 30000, worker.Timeout)
	assert.Equal(t, 3, worker.MaxRetries)
}

func TestLoadFromFile_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_ZEEBE_ADDRESS", "zeebe:26500")
	t.Setenv("TEST_REDIS_ADDRESS", "redis:6379")
	path := writeConfig(t, `
camunda:
  broker_address: "${TEST_ZEEBE_ADDRESS}"
storage:
  backend: redis
database:
  redis:
    address: "${TEST_REDIS_ADDRESS}"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "redis:6379", cfg.Database.Redis.Address)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "storage:\n  backend: memory\n",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "unknown storage backend",
			body:    "camunda:\n  broker_address: x\nstorage:\n  backend: mongo\n",
			wantErr: "storage.backend",
		},
		{
			name:    "redis without address",
			body:    "camunda:\n  broker_address: x\nstorage:\n  backend: redis\n",
			wantErr: "database.redis.address",
		},
		{
			name:    "postgres without host",
			body:    "camunda:\n  broker_address: x\nstorage:\n  backend: postgres\n",
			wantErr: "database.postgres.host",
		},
		{
			name:    "s3 without bucket",
			body:    "camunda:\n  broker_address: x\ndownloads:\n  backend: s3\n",
			wantErr: "downloads.s3_bucket",
		},
		{
			name:    "elasticsearch without url",
			body:    "camunda:\n  broker_address: x\ncatalog:\n  elasticsearch_enabled: true\n",
			wantErr: "elasticsearch",
		},
		{
			name:    "bad timezone",
			body:    "camunda:\n  broker_address: x\ninstitution:\n  timezone: Mars/Olympus\n",
			wantErr: "institution.timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DOWNLOADS_BUCKET", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetWorkerConfig(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"delete-application": {Enabled: false, Timeout: 1000},
	}}

	assert.False(t, GetWorkerConfig(cfg, "delete-application").Enabled)
	assert.False(t, IsWorkerEnabled(cfg, "delete-application"))

	fallback := GetWorkerConfig(cfg, "search-courses")
	assert.True(t, fallback.Enabled)
	assert.Equal(t, 30000, fallback.Timeout)
	assert.True(t, IsWorkerEnabled(cfg, "search-courses"))

	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}

func TestLocation(t *testing.T) {
	cfg := &Config{Institution: InstitutionConfig{Timezone: "Asia/Kolkata"}}
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())

	cfg.Institution.Timezone = "Nowhere/Land"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "admissions", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=admissions sslmode=disable", p.GetDSN())
}
