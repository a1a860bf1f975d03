// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeApplicationValidationFailed ErrorCode = "APPLICATION_VALIDATION_FAILED"
	ErrCodeContactValidationFailed     ErrorCode = "CONTACT_VALIDATION_FAILED"

	ErrCodeStorageReadFailed  ErrorCode = "STORAGE_READ_FAILED"
	ErrCodeStorageWriteFailed ErrorCode = "STORAGE_WRITE_FAILED"

	ErrCodeReceiptGenerationFailed ErrorCode = "RECEIPT_GENERATION_FAILED"
	ErrCodeDownloadDeliveryFailed  ErrorCode = "DOWNLOAD_DELIVERY_FAILED"
	ErrCodeExportFailed            ErrorCode = "EXPORT_FAILED"

	ErrCodeEditInProgress       ErrorCode = "EDIT_IN_PROGRESS"
	ErrCodeNoActiveEdit         ErrorCode = "NO_ACTIVE_EDIT"
	ErrCodeEditTargetMismatch   ErrorCode = "EDIT_TARGET_MISMATCH"
	ErrCodeApplicationNotFound  ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeConfirmationRequired ErrorCode = "CONFIRMATION_REQUIRED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeCourseSearchFailed     ErrorCode = "COURSE_SEARCH_FAILED"

	ErrCodeInputParsingFailed    ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeBrokerUnavailable     ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key/value pair that is forwarded to the process as an error variable.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// AsStandardError unwraps err into a *StandardError if one is in the chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationValidationFailedError carries the per-field messages in metadata under "fieldErrors".
func NewApplicationValidationFailedError(fieldErrors map[string]string) *StandardError {
	return newError(ErrCodeApplicationValidationFailed, "Application failed validation",
		joinFieldErrors(fieldErrors), false).WithMetadata("fieldErrors", fieldErrors)
}

func NewContactValidationFailedError(fieldErrors map[string]string) *StandardError {
	return newError(ErrCodeContactValidationFailed, "Contact message failed validation",
		joinFieldErrors(fieldErrors), false).WithMetadata("fieldErrors", fieldErrors)
}

// NewStorageReadFailedError creates a retryable store error.
func NewStorageReadFailedError(key string, err error) *StandardError {
	return newError(ErrCodeStorageReadFailed, "Failed to read from the store",
		fmt.Sprintf("key: %s, error: %v", key, err), true)
}

// NewStorageWriteFailedError creates a retryable store error.
func NewStorageWriteFailedError(key string, err error) *StandardError {
	return newError(ErrCodeStorageWriteFailed, "Failed to write to the store",
		fmt.Sprintf("key: %s, error: %v", key, err), true)
}

func NewReceiptGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeReceiptGenerationFailed, "Failed to generate the application receipt", errString(err), false)
}

func NewDownloadDeliveryFailedError(filename string, err error) *StandardError {
	return newError(ErrCodeDownloadDeliveryFailed, "Failed to deliver the download",
		fmt.Sprintf("file: %s, error: %v", filename, err), true)
}

func NewExportFailedError(err error) *StandardError {
	return newError(ErrCodeExportFailed, "Failed to export applications", errString(err), false)
}

func NewEditInProgressError(activeID int64) *StandardError {
	return newError(ErrCodeEditInProgress, "Another application is already being edited",
		fmt.Sprintf("activeId: %d", activeID), false).WithMetadata("activeId", activeID)
}

func NewNoActiveEditError() *StandardError {
	return newError(ErrCodeNoActiveEdit, "No application is being edited", "", false)
}

func NewEditTargetMismatchError(activeID, requestedID int64) *StandardError {
	return newError(ErrCodeEditTargetMismatch, "Edit session belongs to a different application",
		fmt.Sprintf("activeId: %d, requestedId: %d", activeID, requestedID), false)
}

func NewApplicationNotFoundError(id int64) *StandardError {
	return newError(ErrCodeApplicationNotFound, "Application not found",
		fmt.Sprintf("id: %d", id), false)
}

func NewConfirmationRequiredError(id int64) *StandardError {
	return newError(ErrCodeConfirmationRequired, "Deletion must be confirmed",
		fmt.Sprintf("id: %d", id), false)
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Failed to send notification",
		fmt.Sprintf("channel: %s, error: %v", channel, err), true)
}

func NewCourseSearchFailedError(err error) *StandardError {
	return newError(ErrCodeCourseSearchFailed, "Course search failed", errString(err), true)
}

func NewInputParsingFailedError(err error) *StandardError {
	return newError(ErrCodeInputParsingFailed, "Failed to parse job variables", errString(err), false)
}

func NewInputValidationFailedError(messages []string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Input validation failed",
		strings.Join(messages, "; "), false)
}

func NewBrokerUnavailableError(operation string, err error) *StandardError {
	return newError(ErrCodeBrokerUnavailable, "Broker operation failed",
		fmt.Sprintf("operation: %s, error: %v", operation, err), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", errString(err), false)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func joinFieldErrors(fieldErrors map[string]string) string {
	parts := make([]string, 0, len(fieldErrors))
	for field, msg := range fieldErrors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeApplicationValidationFailed: "APPLICATION_VALIDATION_FAILED",
	ErrCodeContactValidationFailed:     "CONTACT_VALIDATION_FAILED",
	ErrCodeStorageReadFailed:           "STORAGE_READ_FAILED",
	ErrCodeStorageWriteFailed:          "STORAGE_WRITE_FAILED",
	ErrCodeReceiptGenerationFailed:     "RECEIPT_GENERATION_FAILED",
	ErrCodeDownloadDeliveryFailed:      "DOWNLOAD_DELIVERY_FAILED",
	ErrCodeExportFailed:                "EXPORT_FAILED",
	ErrCodeEditInProgress:              "EDIT_IN_PROGRESS",
	ErrCodeNoActiveEdit:                "NO_ACTIVE_EDIT",
	ErrCodeEditTargetMismatch:          "EDIT_TARGET_MISMATCH",
	ErrCodeApplicationNotFound:         "APPLICATION_NOT_FOUND",
	ErrCodeConfirmationRequired:        "CONFIRMATION_REQUIRED",
	ErrCodeNotificationSendFailed:      "NOTIFICATION_SEND_FAILED",
	ErrCodeCourseSearchFailed:          "COURSE_SEARCH_FAILED",
	ErrCodeInputParsingFailed:          "INPUT_PARSING_FAILED",
	ErrCodeInputValidationFailed:       "INPUT_VALIDATION_FAILED",
	ErrCodeBrokerUnavailable:           "BROKER_UNAVAILABLE",
	ErrCodeInternal:                    "INTERNAL_ERROR",
}

// Codes lists every error code a worker can throw, sorted.
func Codes() []string {
	out := make([]string, 0, len(BPMNErrorMapping))
	for code := range BPMNErrorMapping {
		out = append(out, string(code))
	}
	sort.Strings(out)
	return out
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStorageReadFailed,
		ErrCodeStorageWriteFailed,
		ErrCodeDownloadDeliveryFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeBrokerUnavailable:
		return 3

	case ErrCodeCourseSearchFailed:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "STORAGE"):
		return "STORAGE"
	case strings.Contains(codeStr, "EDIT") || strings.Contains(codeStr, "CONFIRMATION") || strings.Contains(codeStr, "NOT_FOUND"):
		return "REGISTRY"
	case strings.Contains(codeStr, "RECEIPT") || strings.Contains(codeStr, "EXPORT") || strings.Contains(codeStr, "DOWNLOAD"):
		return "DOCUMENT"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "BROKER"):
		return "BROKER"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "PARSING"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
