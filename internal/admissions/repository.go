package admissions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"
	"admissions-workers/internal/storage"

	"github.com/xeipuuv/gojsonschema"
)

const applicationsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id"],
    "properties": {
      "id":             {"type": "integer"},
      "name":           {"type": "string"},
      "dateOfBirth":    {"type": "string"},
      "email":          {"type": "string"},
      "contactNumber":  {"type": "string"},
      "selectedCourse": {"type": "string"},
      "photo":          {"type": "string"},
      "documents":      {"type": "string"},
      "submittedAt":    {"type": "string"}
    }
  }
}`

const contactMessagesSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id"],
    "properties": {
      "id":          {"type": "integer"},
      "name":        {"type": "string"},
      "email":       {"type": "string"},
      "message":     {"type": "string"},
      "submittedAt": {"type": "string"}
    }
  }
}`

var (
	applicationsLoader    = gojsonschema.NewStringLoader(applicationsSchema)
	contactMessagesLoader = gojsonschema.NewStringLoader(contactMessagesSchema)
)

// Keys names the store entries holding each collection.
type Keys struct {
	Applications    string
	ContactMessages string
}

func DefaultKeys() Keys {
	return Keys{Applications: "studentApplications", ContactMessages: "contactMessages"}
}

// Repository reads and replaces whole collections. Every mutation runs
// under one mutex so concurrent jobs in this process never interleave
// their read-modify-write sequences.
type Repository struct {
	store           storage.Store
	keys            Keys
	applications    *gojsonschema.Schema
	contactMessages *gojsonschema.Schema
	now             func() time.Time
	logger          logger.Logger

	mu sync.Mutex
}

func NewRepository(store storage.Store, keys Keys, log logger.Logger) (*Repository, error) {
	appSchema, err := gojsonschema.NewSchema(applicationsLoader)
	if err != nil {
		return nil, fmt.Errorf("compile applications schema: %w", err)
	}
	msgSchema, err := gojsonschema.NewSchema(contactMessagesLoader)
	if err != nil {
		return nil, fmt.Errorf("compile contact messages schema: %w", err)
	}
	return &Repository{
		store:           store,
		keys:            keys,
		applications:    appSchema,
		contactMessages: msgSchema,
		now:             time.Now,
		logger:          logger.Component(log, "admissions.repository"),
	}, nil
}

func (r *Repository) Keys() Keys {
	return r.keys
}

// loaded is a decoded collection plus the raw value when it was unreadable.
type loaded[T any] struct {
	items   []T
	corrupt string
}

func load[T any](ctx context.Context, r *Repository, key string, schema *gojsonschema.Schema) (loaded[T], error) {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return loaded[T]{items: []T{}}, nil
	}
	if err != nil {
		return loaded[T]{}, &StorageError{Key: key, Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return loaded[T]{items: []T{}}, nil
	}

	if reason := checkSchema(schema, raw); reason != "" {
		r.logger.Warn("stored collection is malformed, treating it as empty", map[string]interface{}{
			"key":    key,
			"reason": reason,
			"bytes":  len(raw),
		})
		return loaded[T]{items: []T{}, corrupt: raw}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.logger.Warn("stored collection could not be decoded, treating it as empty", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return loaded[T]{items: []T{}, corrupt: raw}, nil
	}
	if items == nil {
		items = []T{}
	}
	return loaded[T]{items: items}, nil
}

func checkSchema(schema *gojsonschema.Schema, raw string) string {
	result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return err.Error()
	}
	if result.Valid() {
		return ""
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}

func save[T any](ctx context.Context, r *Repository, key string, prev loaded[T], items []T) error {
	if items == nil {
		items = []T{}
	}
	body, err := json.Marshal(items)
	if err != nil {
		return &StorageError{Key: key, Write: true, Err: fmt.Errorf("encode: %w", err)}
	}

	// keep the unreadable value around before it gets replaced
	if prev.corrupt != "" {
		backupKey := fmt.Sprintf("%s.corrupt.%d", key, r.now().UnixMilli())
		if err := r.store.Set(ctx, backupKey, prev.corrupt); err != nil {
			return &StorageError{Key: backupKey, Write: true, Err: err}
		}
		r.logger.Warn("backed up malformed collection before overwrite", map[string]interface{}{
			"key":       key,
			"backupKey": backupKey,
		})
	}

	if err := r.store.Set(ctx, key, string(body)); err != nil {
		return &StorageError{Key: key, Write: true, Err: err}
	}
	return nil
}

// Applications returns the stored application collection.
func (r *Repository) Applications(ctx context.Context) ([]models.ApplicationRecord, error) {
	l, err := load[models.ApplicationRecord](ctx, r, r.keys.Applications, r.applications)
	if err != nil {
		return nil, err
	}
	return l.items, nil
}

// ContactMessages returns the stored contact messages.
func (r *Repository) ContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	l, err := load[models.ContactMessage](ctx, r, r.keys.ContactMessages, r.contactMessages)
	if err != nil {
		return nil, err
	}
	return l.items, nil
}

// UpdateApplications loads the collection, hands it to fn and writes the
// result back in one Set when fn reports a change. Nothing is written when
// fn returns an error or changed=false.
func (r *Repository) UpdateApplications(ctx context.Context, fn func([]models.ApplicationRecord) ([]models.ApplicationRecord, bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := load[models.ApplicationRecord](ctx, r, r.keys.Applications, r.applications)
	if err != nil {
		return err
	}
	next, changed, err := fn(l.items)
	if err != nil || !changed {
		return err
	}
	return save(ctx, r, r.keys.Applications, l, next)
}

// UpdateContactMessages is UpdateApplications for the contact collection.
func (r *Repository) UpdateContactMessages(ctx context.Context, fn func([]models.ContactMessage) ([]models.ContactMessage, bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := load[models.ContactMessage](ctx, r, r.keys.ContactMessages, r.contactMessages)
	if err != nil {
		return err
	}
	next, changed, err := fn(l.items)
	if err != nil || !changed {
		return err
	}
	return save(ctx, r, r.keys.ContactMessages, l, next)
}
