package searchcourses

import (
	"context"

	"admissions-workers/internal/catalog"
	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"
	"admissions-workers/internal/workers/admissions/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "search-courses"

// Handler searches the course catalog by free text and category.
type Handler struct {
	config   *Config
	searcher catalog.Searcher
	catalog  *catalog.Catalog
	runner   *jobs.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, searcher catalog.Searcher, cat *catalog.Catalog, log logger.Logger, opts ...jobs.Option) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		searcher: searcher,
		catalog:  cat,
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
	courses, err := h.searcher.Search(ctx, input.SearchTerm, input.Category)
	if err != nil {
		return nil, errors.NewCourseSearchFailedError(err)
	}
	if courses == nil {
		courses = []models.Course{}
	}

	h.logger.Debug("courses found", map[string]interface{}{
		"searchTerm": input.SearchTerm,
		"category":   input.Category,
		"count":      len(courses),
	})

	return &Output{
		Courses:    courses,
		Count:      len(courses),
		Categories: h.catalog.Categories(),
	}, nil
}
