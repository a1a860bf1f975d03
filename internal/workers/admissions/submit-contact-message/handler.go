package submitcontactmessage

import (
	"context"
	stderrors "errors"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/workers/admissions/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "submit-contact-message"

type Handler struct {
	config  *Config
	contact *admissions.ContactDesk
	runner  *jobs.Runner
	logger  logger.Logger
}

func NewHandler(config *Config, contact *admissions.ContactDesk, log logger.Logger, opts ...jobs.Option) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		contact: contact,
		runner:  jobs.NewRunner(TaskType, config.Timeout, log, opts...),
		logger:  log,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	msg, err := h.contact.Submit(ctx, admissions.ContactForm{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	})
	if err != nil {
		var validationErr *admissions.ValidationError
		if stderrors.As(err, &validationErr) {
			metrics.RecordValidationFailures(validationErr.Fields.Fields())
			return nil, errors.NewContactValidationFailedError(validationErr.Fields)
		}
		return nil, jobs.ToStandardError(err, 0)
	}

	metrics.ContactMessages.Inc()

	return &Output{MessageID: msg.ID, SubmittedAt: msg.SubmittedAt}, nil
}
