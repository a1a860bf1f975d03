package submitapplication

import (
	"context"
	stderrors "errors"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/workers/admissions/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "submit-application"

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

// Execute stores the application and delivers its receipt. Validation
// failures come back as APPLICATION_VALIDATION_FAILED with the per-field
// messages in the error variables.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	sub, err := h.intake.Submit(ctx, input.Application)
	if err != nil {
		var validationErr *admissions.ValidationError
		if stderrors.As(err, &validationErr) {
			metrics.RecordValidationFailures(validationErr.Fields.Fields())
		}
		return nil, jobs.ToStandardError(err, 0)
	}

	metrics.ApplicationsSubmitted.Inc()

	return &Output{
		ApplicationID:   sub.Record.ID,
		Application:     sub.Record,
		ReceiptFilename: sub.Receipt.Filename,
		ReceiptLocation: sub.Receipt.Location,
		Form:            sub.Form,
	}, nil
}
