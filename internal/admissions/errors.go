package admissions

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrStorageRead          = errors.New("storage read failed")
	ErrStorageWrite         = errors.New("storage write failed")
	ErrReceipt              = errors.New("receipt generation failed")
	ErrDelivery             = errors.New("download delivery failed")
	ErrExport               = errors.New("export failed")
	ErrEditInProgress       = errors.New("another edit is in progress")
	ErrNoActiveEdit         = errors.New("no active edit")
	ErrEditTargetMismatch   = errors.New("edit session belongs to a different application")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrConfirmationRequired = errors.New("deletion requires confirmation")
)

// FieldErrors maps a form field's JSON name to its user-facing message.
type FieldErrors map[string]string

func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for f := range fe {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ValidationError carries every failing field. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// EditInProgressError reports which record currently holds the edit session.
type EditInProgressError struct {
	ActiveID int64
}

func (e *EditInProgressError) Error() string {
	return fmt.Sprintf("application %d is already being edited", e.ActiveID)
}

func (e *EditInProgressError) Is(target error) bool {
	return target == ErrEditInProgress
}

// EditTargetMismatchError is returned when a draft operation names a record
// other than the one under edit.
type EditTargetMismatchError struct {
	ActiveID    int64
	RequestedID int64
}

func (e *EditTargetMismatchError) Error() string {
	return fmt.Sprintf("%s: active %d, requested %d", ErrEditTargetMismatch, e.ActiveID, e.RequestedID)
}

func (e *EditTargetMismatchError) Is(target error) bool {
	return target == ErrEditTargetMismatch
}

// StorageError is a failed read or write of one store key.
type StorageError struct {
	Key   string
	Write bool
	Err   error
}

func (e *StorageError) Error() string {
	if e.Write {
		return fmt.Sprintf("%s: %s: %v", ErrStorageWrite, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrStorageRead, e.Key, e.Err)
}

func (e *StorageError) Is(target error) bool {
	if e.Write {
		return target == ErrStorageWrite
	}
	return target == ErrStorageRead
}

func (e *StorageError) Unwrap() error { return e.Err }

// DeliveryError is a download the sink refused.
type DeliveryError struct {
	Filename string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDelivery, e.Filename, e.Err)
}

func (e *DeliveryError) Is(target error) bool { return target == ErrDelivery }

func (e *DeliveryError) Unwrap() error { return e.Err }
