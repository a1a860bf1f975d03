package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplicationValidationFailedError(t *testing.T) {
	err := NewApplicationValidationFailedError(map[string]string{
		"email": "Email is invalid",
		"name":  "Name is required",
	})

	assert.Equal(t, ErrCodeApplicationValidationFailed, err.Code)
	assert.False(t, err.Retryable)
	assert.Equal(t, "email: Email is invalid; name: Name is required", err.Details)
	assert.Contains(t, err.Metadata, "fieldErrors")
}

func TestAsStandardError(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", NewApplicationNotFoundError(7))

	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeApplicationNotFound, stdErr.Code)
	assert.Equal(t, "id: 7", stdErr.Details)

	_, ok = AsStandardError(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestConvertToBPMNError(t *testing.T) {
	t.Run("retryable storage error", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(NewStorageWriteFailedError("studentApplications", stderrors.New("disk full")))

		assert.Equal(t, "STORAGE_WRITE_FAILED", bpmnErr.Code)
		assert.True(t, bpmnErr.Retryable)
		assert.Equal(t, 3, bpmnErr.Retries)
		assert.Equal(t, "STORAGE_WRITE_FAILED", bpmnErr.ErrorVariables["originalErrorCode"])
		assert.Contains(t, bpmnErr.Details, "studentApplications")
	})

	t.Run("business error is not retried", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(NewEditInProgressError(42))

		assert.Equal(t, "EDIT_IN_PROGRESS", bpmnErr.Code)
		assert.Equal(t, 0, bpmnErr.Retries)
		assert.Equal(t, int64(42), bpmnErr.ErrorVariables["activeId"])
	})

	t.Run("non-retryable instance of retryable code", func(t *testing.T) {
		stdErr := NewDownloadDeliveryFailedError("receipt.pdf", stderrors.New("denied"))
		stdErr.Retryable = false
		assert.Equal(t, 0, ConvertToBPMNError(stdErr).Retries)
	})
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	bpmnErr := ConvertToBPMNError(NewConfirmationRequiredError(3))
	vars := bpmnErr.ToErrorVariables()

	assert.Equal(t, "CONFIRMATION_REQUIRED", vars["errorCode"])
	assert.Equal(t, "Deletion must be confirmed", vars["errorMessage"])
	assert.Equal(t, "id: 3", vars["errorDetails"])
	assert.Equal(t, false, vars["retryable"])
	assert.Contains(t, vars, "timestamp")
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeStorageReadFailed, "STORAGE"},
		{ErrCodeEditInProgress, "REGISTRY"},
		{ErrCodeConfirmationRequired, "REGISTRY"},
		{ErrCodeApplicationNotFound, "REGISTRY"},
		{ErrCodeReceiptGenerationFailed, "DOCUMENT"},
		{ErrCodeExportFailed, "DOCUMENT"},
		{ErrCodeDownloadDeliveryFailed, "DOCUMENT"},
		{ErrCodeCourseSearchFailed, "SEARCH"},
		{ErrCodeNotificationSendFailed, "NOTIFICATION"},
		{ErrCodeBrokerUnavailable, "BROKER"},
		{ErrCodeApplicationValidationFailed, "VALIDATION"},
		{ErrCodeInputParsingFailed, "VALIDATION"},
		{ErrCodeInternal, "OTHER"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorCategory(tt.code))
		})
	}
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeStorageWriteFailed))
	assert.True(t, IsRetryableErrorCode(ErrCodeCourseSearchFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeApplicationValidationFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeInternal))
}

func TestBPMNErrorMappingCoversEveryCode(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeApplicationValidationFailed, ErrCodeContactValidationFailed,
		ErrCodeStorageReadFailed, ErrCodeStorageWriteFailed,
		ErrCodeReceiptGenerationFailed, ErrCodeDownloadDeliveryFailed, ErrCodeExportFailed,
		ErrCodeEditInProgress, ErrCodeNoActiveEdit, ErrCodeEditTargetMismatch,
		ErrCodeApplicationNotFound, ErrCodeConfirmationRequired,
		ErrCodeNotificationSendFailed, ErrCodeCourseSearchFailed,
		ErrCodeInputParsingFailed, ErrCodeInputValidationFailed,
		ErrCodeBrokerUnavailable, ErrCodeInternal,
	}
	for _, code := range codes {
		assert.Contains(t, BPMNErrorMapping, code)
	}
}

func TestNormalizeError(t *testing.T) {
	h := &ErrorHandler{}

	stdErr := h.normalizeError(NewNoActiveEditError())
	assert.Equal(t, ErrCodeNoActiveEdit, stdErr.Code)

	stdErr = h.normalizeError(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	assert.Equal(t, "boom", stdErr.Details)
}

func TestCodes(t *testing.T) {
	codes := Codes()
	assert.Len(t, codes, len(BPMNErrorMapping))
	assert.Contains(t, codes, "EDIT_IN_PROGRESS")
	assert.IsIncreasing(t, codes)
}
