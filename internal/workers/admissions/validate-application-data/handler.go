package validateapplicationdata

import (
	"context"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/workers/admissions/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "validate-application-data"

// Handler runs the intake rules without storing anything. An invalid form
// completes the job with isValid=false so the process can branch on it.
type Handler struct {
	config *Config
	intake *admissions.Intake
	runner *jobs.Runner
	logger logger.Logger
}

func NewHandler(config *Config, intake *admissions.Intake, log logger.Logger, opts ...jobs.Option) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		intake: intake,
		runner: jobs.NewRunner(TaskType, config.Timeout, log, opts...),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
		var input Input
		if err := jobs.Decode(vars, inputSchema, &input); err != nil {
			return nil, err
		}
		return h.Execute(ctx, &input)
	})
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	fieldErrs := h.intake.Validate(input.Application)
	if fieldErrs == nil {
		fieldErrs = admissions.FieldErrors{}
	}
	metrics.RecordValidationFailures(fieldErrs.Fields())

	h.logger.Info("validation completed", map[string]interface{}{
		"isValid":    len(fieldErrs) == 0,
		"errorCount": len(fieldErrs),
	})

	return &Output{
		IsValid:          len(fieldErrs) == 0,
		ValidationErrors: fieldErrs,
	}, nil
}
