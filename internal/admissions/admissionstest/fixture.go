// Package admissionstest wires an admissions service over in-memory
// storage and an in-memory download directory for worker tests.
package admissionstest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/catalog"
	"admissions-workers/internal/common/config"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/downloads"
	"admissions-workers/internal/models"
	"admissions-workers/internal/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	ApplicationsKey    = "studentApplications"
	ContactMessagesKey = "contactMessages"
	DownloadDir        = "downloads"
)

type Fixture struct {
	Config  *config.Config
	Store   *storage.MemoryStore
	Fs      afero.Fs
	Catalog *catalog.Catalog
	Service *admissions.Service
}

// Config returns the settings the fixture's service is built from.
func Config() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{
			Backend:            config.StorageMemory,
			ApplicationsKey:    ApplicationsKey,
			ContactMessagesKey: ContactMessagesKey,
		},
		Institution: config.InstitutionConfig{
			Name:      "Excellence University",
			FormTitle: "Admission Application Form",
			Timezone:  "UTC",
		},
		Downloads: config.DownloadsConfig{
			Backend:   config.DownloadsLocal,
			Directory: DownloadDir,
		},
		Export: config.ExportConfig{
			Filename:   "student_applications.csv",
			DateLayout: "1/2/2006",
		},
	}
}

func New(t testing.TB) *Fixture {
	t.Helper()

	cfg := Config()
	store := storage.NewMemoryStore()
	fs := afero.NewMemMapFs()
	cat := catalog.Default()

	svc, err := admissions.NewService(cfg, store, downloads.NewLocalSink(fs, DownloadDir), cat.CourseNames(), logger.NewTestLogger(t))
	require.NoError(t, err)

	return &Fixture{Config: cfg, Store: store, Fs: fs, Catalog: cat, Service: svc}
}

// Seed replaces the stored application collection.
func (f *Fixture) Seed(t testing.TB, records ...models.ApplicationRecord) {
	t.Helper()
	if records == nil {
		records = []models.ApplicationRecord{}
	}
	raw, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, f.Store.Set(context.Background(), ApplicationsKey, string(raw)))
}

// Stored returns the application collection as persisted, nil when absent.
func (f *Fixture) Stored(t testing.TB) []models.ApplicationRecord {
	t.Helper()
	return decode[models.ApplicationRecord](t, f.Store, ApplicationsKey)
}

// StoredMessages returns the persisted contact messages, nil when absent.
func (f *Fixture) StoredMessages(t testing.TB) []models.ContactMessage {
	t.Helper()
	return decode[models.ContactMessage](t, f.Store, ContactMessagesKey)
}

// ReadDownload returns the bytes delivered under name.
func (f *Fixture) ReadDownload(t testing.TB, name string) []byte {
	t.Helper()
	matches, err := afero.Glob(f.Fs, DownloadDir+"/*/"+name)
	require.NoError(t, err)
	require.Len(t, matches, 1, "expected one delivered %s", name)
	data, err := afero.ReadFile(f.Fs, matches[0])
	require.NoError(t, err)
	return data
}

func decode[T any](t testing.TB, store storage.Store, key string) []T {
	raw, err := store.Get(context.Background(), key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	require.NoError(t, err)
	var out []T
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

// Record builds a stored application.
func Record(id int64, name, email, course string) models.ApplicationRecord {
	return models.ApplicationRecord{
		ID:             id,
		Name:           name,
		DateOfBirth:    "2000-01-01",
		Email:          email,
		ContactNumber:  "555-123-4567",
		SelectedCourse: course,
		SubmittedAt:    "2024-01-02T03:04:05.678Z",
	}
}

// Records is a small collection spanning three courses.
func Records() []models.ApplicationRecord {
	return []models.ApplicationRecord{
		Record(1, "Ada Lovelace", "ada@example.com", "Data Science"),
		Record(2, "Grace Hopper", "grace@navy.mil", "Computer Science & Engineering"),
		Record(3, "Alan Turing", "alan@bletchley.uk", "Business Administration"),
	}
}

// ValidForm is an application that passes every rule.
func ValidForm() admissions.ApplicationForm {
	return admissions.ApplicationForm{
		Name:           "Ada Lovelace",
		DateOfBirth:    "2000-01-01",
		Email:          "ada@example.com",
		ContactNumber:  "(555) 123-4567",
		SelectedCourse: "Data Science",
		Photo:          &admissions.FileRef{Name: "ada.png", Size: 1024, ContentType: "image/png"},
	}
}
