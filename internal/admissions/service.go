// Package admissions implements the application lifecycle: intake of new
// applications with a PDF receipt, the admin registry (filter, edit,
// delete, export) and the contact form. All state lives in a
// storage.Store as JSON collections.
package admissions

import (
	"admissions-workers/internal/common/config"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/downloads"
	"admissions-workers/internal/storage"
)

// Service bundles the components that share one repository.
type Service struct {
	Repository *Repository
	Intake     *Intake
	Registry   *Registry
	Contact    *ContactDesk
}

// NewService wires the admissions components from configuration.
func NewService(cfg *config.Config, store storage.Store, sink downloads.Sink, courses []string, log logger.Logger) (*Service, error) {
	repo, err := NewRepository(store, Keys{
		Applications:    cfg.Storage.ApplicationsKey,
		ContactMessages: cfg.Storage.ContactMessagesKey,
	}, log)
	if err != nil {
		return nil, err
	}

	loc := cfg.Location()
	receipts := NewReceiptGenerator(cfg.Institution.Name, cfg.Institution.FormTitle, loc)
	exporter := NewCSVExporter(loc, cfg.Export.DateLayout)

	return &Service{
		Repository: repo,
		Intake:     NewIntake(repo, receipts, sink, courses, log),
		Registry:   NewRegistry(repo, exporter, sink, courses, log, WithExportFilename(cfg.Export.Filename)),
		Contact:    NewContactDesk(repo, log),
	}, nil
}
