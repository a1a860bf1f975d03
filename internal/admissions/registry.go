package admissions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/downloads"
	"admissions-workers/internal/models"
)

// Filter selects the registry view. An empty Course behaves like "All".
type Filter struct {
	SearchTerm string `json:"searchTerm"`
	Course     string `json:"course"`
}

// FilterApplications keeps records whose name or email contains the term
// (case-insensitive) and whose selected course matches. It never mutates records.
func FilterApplications(records []models.ApplicationRecord, f Filter) []models.ApplicationRecord {
	needle := strings.ToLower(f.SearchTerm)
	out := make([]models.ApplicationRecord, 0, len(records))
	for _, r := range records {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Name), needle) &&
			!strings.Contains(strings.ToLower(r.Email), needle) {
			continue
		}
		if f.Course != "" && f.Course != models.CategoryAll && r.SelectedCourse != f.Course {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Listing is a filtered view with the "Showing N of M" counts.
type Listing struct {
	Applications []models.ApplicationRecord `json:"applications"`
	Shown        int                        `json:"shown"`
	Total        int                        `json:"total"`
}

// EditSession is the single in-flight edit: the target id plus a draft copy
// of the record holding the changes made so far.
type EditSession struct {
	ID        int64                    `json:"id"`
	Draft     models.ApplicationRecord `json:"draft"`
	Changed   []string                 `json:"changed"`
	StartedAt time.Time                `json:"startedAt"`
}

func (s *EditSession) clone() *EditSession {
	c := *s
	c.Changed = append([]string(nil), s.Changed...)
	return &c
}

func (s *EditSession) apply(changes map[string]string) {
	for field, value := range changes {
		s.Draft.SetField(field, value)
		if !containsString(s.Changed, field) {
			s.Changed = append(s.Changed, field)
		}
	}
	sort.Strings(s.Changed)
}

// Export is the outcome of an export: where the file went and how many rows it has.
type Export struct {
	File *downloads.Object `json:"file"`
	Rows int               `json:"rows"`
}

// Registry is the admin view over the stored applications. The store stays
// the source of truth: every call reloads the collection.
type Registry struct {
	repo           *Repository
	exporter       *CSVExporter
	sink           downloads.Sink
	courses        []string
	exportFilename string
	now            func() time.Time
	logger         logger.Logger

	mu      sync.Mutex
	session *EditSession
}

type RegistryOption func(*Registry)

func WithExportFilename(name string) RegistryOption {
	return func(r *Registry) {
		if name != "" {
			r.exportFilename = name
		}
	}
}

func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(repo *Repository, exporter *CSVExporter, sink downloads.Sink, courses []string, log logger.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		repo:           repo,
		exporter:       exporter,
		sink:           sink,
		courses:        append([]string(nil), courses...),
		exportFilename: "student_applications.csv",
		now:            time.Now,
		logger:         logger.Component(log, "admissions.registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns the filtered view of the current collection.
func (r *Registry) List(ctx context.Context, f Filter) (*Listing, error) {
	all, err := r.repo.Applications(ctx)
	if err != nil {
		return nil, err
	}
	shown := FilterApplications(all, f)
	return &Listing{Applications: shown, Shown: len(shown), Total: len(all)}, nil
}

// Get returns one stored record.
func (r *Registry) Get(ctx context.Context, id int64) (*models.ApplicationRecord, error) {
	all, err := r.repo.Applications(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			rec := all[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrApplicationNotFound, id)
}

// ActiveEdit returns a copy of the current session, if any.
func (r *Registry) ActiveEdit() (*EditSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil, false
	}
	return r.session.clone(), true
}

// BeginEdit opens the edit session for id. Beginning the record already
// under edit returns the existing session; any other id is rejected while
// a session is open.
func (r *Registry) BeginEdit(ctx context.Context, id int64) (*EditSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		if r.session.ID == id {
			return r.session.clone(), nil
		}
		return nil, &EditInProgressError{ActiveID: r.session.ID}
	}

	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.session = &EditSession{ID: id, Draft: *rec, Changed: []string{}, StartedAt: r.now()}
	r.logger.Info("edit started", map[string]interface{}{"applicationId": id})
	return r.session.clone(), nil
}

// UpdateDraft records field changes on the open session without persisting them.
func (r *Registry) UpdateDraft(id int64, changes map[string]string) (*EditSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkSession(id); err != nil {
		return nil, err
	}
	if err := checkEditable(changes); err != nil {
		return nil, err
	}
	r.session.apply(changes)
	return r.session.clone(), nil
}

// SaveEdit applies any last changes to the draft, then merges only the
// changed fields into the stored record with the session's id and persists
// the collection. The session ends on success or when the record has
// disappeared. A validation failure keeps it open and discards the
// rejected changes.
func (r *Registry) SaveEdit(ctx context.Context, id int64, changes map[string]string) (*models.ApplicationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkSession(id); err != nil {
		return nil, err
	}
	if err := checkEditable(changes); err != nil {
		return nil, err
	}

	draft := r.session.clone()
	draft.apply(changes)

	edited := make(map[string]string, len(draft.Changed))
	for _, field := range draft.Changed {
		v, _ := draft.Draft.FieldValue(field)
		edited[field] = v
	}
	if fieldErrs := validateChanges(edited, r.courses); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	var saved models.ApplicationRecord
	err := r.repo.UpdateApplications(ctx, func(all []models.ApplicationRecord) ([]models.ApplicationRecord, bool, error) {
		next := make([]models.ApplicationRecord, len(all))
		copy(next, all)
		for i := range next {
			if next[i].ID != id {
				continue
			}
			for field, value := range edited {
				next[i].SetField(field, value)
			}
			saved = next[i]
			return next, len(edited) > 0, nil
		}
		return nil, false, fmt.Errorf("%w: %d", ErrApplicationNotFound, id)
	})
	if err != nil {
		if errors.Is(err, ErrApplicationNotFound) {
			r.session = nil
		} else {
			r.session = draft
		}
		return nil, err
	}

	r.session = nil
	r.logger.Info("edit saved", map[string]interface{}{
		"applicationId": id,
		"fields":        draft.Changed,
	})
	return &saved, nil
}

// CancelEdit discards the draft. It reports whether a session was open.
func (r *Registry) CancelEdit() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return false
	}
	r.logger.Info("edit cancelled", map[string]interface{}{"applicationId": r.session.ID})
	r.session = nil
	return true
}

// Delete removes the record with id once confirmed. An unknown id is a
// no-op and reports false without writing.
func (r *Registry) Delete(ctx context.Context, id int64, confirmed bool) (bool, error) {
	if !confirmed {
		return false, fmt.Errorf("%w: %d", ErrConfirmationRequired, id)
	}

	deleted := false
	err := r.repo.UpdateApplications(ctx, func(all []models.ApplicationRecord) ([]models.ApplicationRecord, bool, error) {
		next := make([]models.ApplicationRecord, 0, len(all))
		for _, rec := range all {
			if rec.ID == id {
				deleted = true
				continue
			}
			next = append(next, rec)
		}
		return next, deleted, nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		r.mu.Lock()
		if r.session != nil && r.session.ID == id {
			r.session = nil
		}
		r.mu.Unlock()
		r.logger.Info("application deleted", map[string]interface{}{"applicationId": id})
	}
	return deleted, nil
}

// Export writes the CSV of the filtered view to the download sink. Storage is never written.
func (r *Registry) Export(ctx context.Context, f Filter) (*Export, error) {
	listing, err := r.List(ctx, f)
	if err != nil {
		return nil, err
	}

	body, err := r.exporter.Render(listing.Applications)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}

	file, err := r.sink.Deliver(ctx, r.exportFilename, downloads.ContentTypeCSV, body)
	if err != nil {
		return nil, &DeliveryError{Filename: r.exportFilename, Err: err}
	}

	r.logger.Info("applications exported", map[string]interface{}{
		"rows":     listing.Shown,
		"location": file.Location,
	})
	return &Export{File: file, Rows: listing.Shown}, nil
}

func (r *Registry) checkSession(id int64) error {
	if r.session == nil {
		return ErrNoActiveEdit
	}
	if r.session.ID != id {
		return &EditTargetMismatchError{ActiveID: r.session.ID, RequestedID: id}
	}
	return nil
}

func checkEditable(changes map[string]string) error {
	for field := range changes {
		if !containsString(models.EditableFields, field) {
			return &ValidationError{Fields: FieldErrors{field: "Field cannot be edited"}}
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
