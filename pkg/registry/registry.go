// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/afero"
)

const DefaultPath = "configs/activity-registry.json"

func LoadRegistry(fs afero.Fs, path string) (*ActivityRegistry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &reg, nil
}

// SaveRegistry stamps LastUpdated and writes the registry as indented JSON.
func SaveRegistry(fs afero.Fs, path string, reg *ActivityRegistry, now time.Time) error {
	reg.LastUpdated = now.UTC().Format("2006-01-02")

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Update sets one scalar field of the activity with id.
func (r *ActivityRegistry) Update(id, field, value string) error {
	a, ok := r.Find(id)
	if !ok {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		switch value {
		case StatusPlanned, StatusInProgress, StatusCompleted, StatusVerified:
		default:
			return fmt.Errorf("invalid status %q", value)
		}
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	return nil
}

// Validate checks required fields and cross-checks the registry against the
// task types the worker manager registers and the error codes it can throw.
// Every problem found is reported.
func (r *ActivityRegistry) Validate(taskTypes, errorCodes []string) error {
	var problems []error
	if len(r.Activities) == 0 {
		return errors.New("registry contains no activities")
	}

	codes := make(map[string]bool, len(errorCodes))
	for _, c := range errorCodes {
		codes[c] = true
	}

	ids := make(map[string]bool)
	registered := make(map[string]bool)
	for _, a := range r.Activities {
		if a.ID == "" {
			problems = append(problems, errors.New("activity missing required field: ID"))
			continue
		}
		if ids[a.ID] {
			problems = append(problems, fmt.Errorf("duplicate activity ID: %s", a.ID))
		}
		ids[a.ID] = true

		if a.DisplayName == "" {
			problems = append(problems, fmt.Errorf("activity %s missing required field: DisplayName", a.ID))
		}
		if a.Category == "" {
			problems = append(problems, fmt.Errorf("activity %s missing required field: Category", a.ID))
		}
		if a.TaskType == "" {
			problems = append(problems, fmt.Errorf("activity %s missing required field: TaskType", a.ID))
		}
		if _, err := time.ParseDuration(a.Timeout); err != nil {
			problems = append(problems, fmt.Errorf("activity %s has invalid timeout %q", a.ID, a.Timeout))
		}
		for _, c := range a.ErrorCodes {
			if len(codes) > 0 && !codes[c] {
				problems = append(problems, fmt.Errorf("activity %s lists unknown error code %s", a.ID, c))
			}
		}
		registered[a.TaskType] = true
	}

	for _, tt := range taskTypes {
		if !registered[tt] {
			problems = append(problems, fmt.Errorf("task type %s has a worker but no activity", tt))
		}
	}
	return errors.Join(problems...)
}
