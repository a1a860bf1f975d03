package admissions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"admissions-workers/internal/catalog"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/downloads"
	"admissions-workers/internal/models"
	"admissions-workers/internal/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var testNow = time.Date(2024, 1, 2, 3, 4, 5, 678_000_000, time.UTC)

func fixedClock() time.Time { return testNow }

func courseNames() []string {
	return catalog.Default().CourseNames()
}

// flakyStore wraps a MemoryStore and fails on demand.
type flakyStore struct {
	*storage.MemoryStore
	failGet bool
	failSet bool
}

func (s *flakyStore) Get(ctx context.Context, key string) (string, error) {
	if s.failGet {
		return "", errors.New("connection refused")
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	if s.failSet {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func newTestStore() *flakyStore {
	return &flakyStore{MemoryStore: storage.NewMemoryStore()}
}

func newTestRepo(t *testing.T, store storage.Store) *Repository {
	t.Helper()
	repo, err := NewRepository(store, DefaultKeys(), logger.NewTestLogger(t))
	require.NoError(t, err)
	repo.now = fixedClock
	return repo
}

func seedApplications(t *testing.T, store storage.Store, records ...models.ApplicationRecord) string {
	t.Helper()
	if records == nil {
		records = []models.ApplicationRecord{}
	}
	raw, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "studentApplications", string(raw)))
	return string(raw)
}

func storedApplications(t *testing.T, store storage.Store) []models.ApplicationRecord {
	t.Helper()
	raw, err := store.Get(context.Background(), "studentApplications")
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	require.NoError(t, err)
	var out []models.ApplicationRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func newTestSink() (*downloads.LocalSink, afero.Fs) {
	fs := afero.NewMemMapFs()
	return downloads.NewLocalSink(fs, "/downloads"), fs
}

// failingSink rejects every delivery.
type failingSink struct{}

func (failingSink) Deliver(context.Context, string, string, []byte) (*downloads.Object, error) {
	return nil, errors.New("bucket unavailable")
}

func (failingSink) Remove(context.Context, *downloads.Object) error {
	return errors.New("bucket unavailable")
}

func validForm() ApplicationForm {
	return ApplicationForm{
		Name:           "Jane  Doe",
		DateOfBirth:    "2004-05-06",
		Email:          "jane@example.com",
		ContactNumber:  "(555) 123-4567",
		SelectedCourse: "Data Science",
		Photo:          &FileRef{Name: "jane.png", Size: 2048, ContentType: "image/png"},
	}
}

func sampleRecords() []models.ApplicationRecord {
	return []models.ApplicationRecord{
		{
			ID: 1, Name: "Alice Smith", DateOfBirth: "2003-01-01", Email: "alice@x.com",
			ContactNumber: "5551112222", SelectedCourse: "Data Science",
			SubmittedAt: "2024-03-10T12:00:00.000Z",
		},
		{
			ID: 2, Name: "Bob Jones", DateOfBirth: "2002-02-02", Email: "bob@y.org",
			ContactNumber: "5553334444", SelectedCourse: "Business Administration",
			Documents: "transcript.pdf", SubmittedAt: "2024-03-11T08:30:00.000Z",
		},
		{
			ID: 3, Name: "Carol White", DateOfBirth: "2001-03-03", Email: "carol@x.com",
			ContactNumber: "5555556666", SelectedCourse: "Data Science",
			SubmittedAt: "2024-03-12T23:59:59.000Z",
		},
	}
}
