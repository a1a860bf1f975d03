// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

var (
	ApplicationsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "admissions_applications_submitted_total",
			Help: "Applications accepted by intake",
		},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admissions_validation_failures_total",
			Help: "Rejected form fields, by field name",
		},
		[]string{"field"},
	)

	RegistryMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admissions_registry_mutations_total",
			Help: "Persisted registry changes, by operation",
		},
		[]string{"operation"},
	)

	Exports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "admissions_exports_total",
			Help: "CSV exports delivered",
		},
	)

	ContactMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "admissions_contact_messages_total",
			Help: "Contact messages stored",
		},
	)
)

// RecordValidationFailures counts each failing field once.
func RecordValidationFailures(fields []string) {
	for _, f := range fields {
		ValidationFailures.WithLabelValues(f).Inc()
	}
}
