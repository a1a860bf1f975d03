package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"admissions-workers/internal/common/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_CollectionGauge(t *testing.T) {
	obs := New("admissions-workers-test", logger.NewTestLogger(t))
	defer obs.Shutdown()

	obs.RecordJob(context.Background(), "submit-application", "completed", 12*time.Millisecond)
	require.NoError(t, obs.RegisterCollectionGauge("applications", func(context.Context) (int, error) {
		return 3, nil
	}))
	require.NoError(t, obs.RegisterCollectionGauge("contact_messages", func(context.Context) (int, error) {
		return 0, errors.New("store down")
	}))

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var found, jobsFound bool
	for _, mf := range families {
		assert.NotContains(t, mf.GetName(), ".", "metric names stay in the classic prometheus charset")
		if strings.HasPrefix(mf.GetName(), "admissions_jobs_processed") {
			jobsFound = true
		}
		if !strings.HasPrefix(mf.GetName(), "admissions_collection_size") {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "collection" && l.GetValue() == "applications" {
					found = true
					assert.Equal(t, float64(3), m.GetGauge().GetValue())
				}
				assert.NotEqual(t, "contact_messages", l.GetValue(), "failed callbacks observe nothing")
			}
		}
	}
	assert.True(t, found, "applications gauge not exported")
	assert.True(t, jobsFound, "job counter not exported")
}

func TestObservability_Disabled(t *testing.T) {
	obs := &Observability{logger: logger.NewNoOpLogger()}

	assert.NotPanics(t, func() {
		obs.RecordJob(context.Background(), "search-courses", "failed", time.Second)
		assert.NoError(t, obs.RegisterCollectionGauge("applications", func(context.Context) (int, error) { return 1, nil }))
		obs.Shutdown()
	})
}
