package exportapplications

import (
	"context"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/workers/admissions/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "export-applications"

// Handler writes the CSV of the filtered registry view to the download sink.
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
	export, err := h.registry.Export(ctx, admissions.Filter{
		SearchTerm: input.SearchTerm,
		Course:     input.Course,
	})
	if err != nil {
		return nil, jobs.ToStandardError(err, 0)
	}

	metrics.Exports.Inc()

	return &Output{
		Filename:    export.File.Filename,
		Location:    export.File.Location,
		ContentType: export.File.ContentType,
		Size:        export.File.Size,
		Rows:        export.Rows,
	}, nil
}
