// Package jobs holds what every admissions worker does around its Execute
// call: variable decoding, timeouts, metrics, completion and error reporting.
package jobs

import (
	"context"
	"encoding/json"
	"time"

	"admissions-workers/internal/common/config"
	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const DefaultTimeout = 30 * time.Second

// Recorder receives one call per finished job.
type Recorder interface {
	RecordJob(ctx context.Context, taskType, status string, duration time.Duration)
}

// Option configures a Runner.
type Option func(*Runner)

// WithRecorder reports every finished job to rec.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// Timeout converts a worker's configured timeout, falling back to DefaultTimeout.
func Timeout(wcfg config.WorkerConfig) time.Duration {
	if wcfg.Timeout <= 0 {
		return DefaultTimeout
	}
	return time.Duration(wcfg.Timeout) * time.Millisecond
}

// ExecuteFunc decodes the job variables and runs one handler.
type ExecuteFunc func(ctx context.Context, vars map[string]interface{}) (interface{}, error)

type Runner struct {
	taskType string
	timeout  time.Duration
	logger   logger.Logger
	errors   *errors.ErrorHandler
	recorder Recorder
}

func NewRunner(taskType string, timeout time.Duration, log logger.Logger, opts ...Option) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	r := &Runner{
		taskType: taskType,
		timeout:  timeout,
		logger:   log,
		errors:   errors.NewErrorHandler(log),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run completes the job with execute's output or reports its error to the broker.
func (r *Runner) Run(client worker.JobClient, job entities.Job, execute ExecuteFunc) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(r.taskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	output, err := r.execute(ctx, job, execute)
	if err != nil {
		stdErr := ToStandardError(err, 0)
		r.fail(ctx, stdErr.Code, startTime)
		r.errors.HandleJobError(ctx, client, job, stdErr)
		return
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		r.fail(ctx, errors.ErrCodeInternal, startTime)
		r.errors.HandleJobError(ctx, client, job, errors.NewInternalError(err))
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		r.fail(ctx, errors.ErrCodeInternal, startTime)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(time.Since(startTime).Seconds())
	r.record(ctx, "completed", startTime)
	r.logger.Info("job completed", map[string]interface{}{
		"jobKey":   job.GetKey(),
		"duration": time.Since(startTime).String(),
	})
}

func (r *Runner) execute(ctx context.Context, job entities.Job, execute ExecuteFunc) (interface{}, error) {
	vars, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}
	return execute(ctx, vars)
}

func (r *Runner) fail(ctx context.Context, code errors.ErrorCode, startTime time.Time) {
	metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(code)).Inc()
	r.record(ctx, "failed", startTime)
}

func (r *Runner) record(ctx context.Context, status string, startTime time.Time) {
	if r.recorder != nil {
		r.recorder.RecordJob(ctx, r.taskType, status, time.Since(startTime))
	}
}

// Decode checks vars against schema and unmarshals them into out.
func Decode(vars map[string]interface{}, schema *validation.Schema, out interface{}) error {
	if schema != nil {
		if result := validation.ValidateInput(vars, schema); !result.Valid {
			return errors.NewInputValidationFailedError(result.GetErrorMessages())
		}
	}
	raw, err := json.Marshal(vars)
	if err != nil {
		return errors.NewInputParsingFailedError(err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.NewInputParsingFailedError(err)
	}
	return nil
}
