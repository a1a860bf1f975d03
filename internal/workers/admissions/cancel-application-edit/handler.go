package cancelapplicationedit

import (
	"context"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/workers/admissions/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "cancel-application-edit"

// Handler discards the open draft. Nothing is persisted.
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

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	session, open := h.registry.ActiveEdit()
	if !open {
		return &Output{Cancelled: false}, nil
	}
	if input.ApplicationID != 0 && session.ID != input.ApplicationID {
		return nil, jobs.ToStandardError(&admissions.EditTargetMismatchError{
			ActiveID:    session.ID,
			RequestedID: input.ApplicationID,
		}, input.ApplicationID)
	}

	cancelled := h.registry.CancelEdit()
	return &Output{Cancelled: cancelled, ApplicationID: session.ID}, nil
}
