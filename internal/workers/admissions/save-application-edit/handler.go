package saveapplicationedit

import (
	"context"
	"sort"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/workers/admissions/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "save-application-edit"

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

// Execute merges the edited fields into the stored record and ends the
// session. On a validation failure the session stays open with the draft.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	updated := changedFields(h.registry, input)

	record, err := h.registry.SaveEdit(ctx, input.ApplicationID, input.Changes)
	if err != nil {
		return nil, jobs.ToStandardError(err, input.ApplicationID)
	}

	if len(updated) > 0 {
		metrics.RegistryMutations.WithLabelValues("edit").Inc()
	}

	return &Output{Application: *record, UpdatedFields: updated}, nil
}

// changedFields is the union of fields already on the draft and the incoming changes.
func changedFields(registry *admissions.Registry, input *Input) []string {
	seen := map[string]bool{}
	if session, ok := registry.ActiveEdit(); ok && session.ID == input.ApplicationID {
		for _, f := range session.Changed {
			seen[f] = true
		}
	}
	for f := range input.Changes {
		seen[f] = true
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
