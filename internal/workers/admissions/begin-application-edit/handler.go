package beginapplicationedit

import (
	"context"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"
	"admissions-workers/internal/workers/admissions/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "begin-application-edit"

// Handler opens the registry's single edit session.
type Handler struct {
	config   *Config
	registry *admissions.Registry
	runner   *jobs.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, registry *admissions.Registry, log logger.Logger, opts ...jobs.Option) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		registry: registry,
		runner:   jobs.NewRunner(TaskType, config.Timeout, log, opts...),
		logger:   log,
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
	session, err := h.registry.BeginEdit(ctx, input.ApplicationID)
	if err != nil {
		return nil, jobs.ToStandardError(err, input.ApplicationID)
	}

	return &Output{
		ApplicationID:  session.ID,
		Draft:          session.Draft,
		EditableFields: append([]string(nil), models.EditableFields...),
		StartedAt:      session.StartedAt,
	}, nil
}
