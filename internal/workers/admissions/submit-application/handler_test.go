package submitapplication

import (
	"context"
	"testing"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/admissions/admissionstest"
	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) (*Handler, *admissionstest.Fixture) {
	fx := admissionstest.New(t)
	return NewHandler(&Config{}, fx.Service.Intake, logger.NewTestLogger(t)), fx
}

func createTestInput() *Input {
	return &Input{Application: admissionstest.ValidForm()}
}

func TestExecute_Success(t *testing.T) {
	handler, fx := createTestHandler(t)
	fx.Seed(t, admissionstest.Records()...)

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	stored := fx.Stored(t)
	require.Len(t, stored, 4)
	rec := stored[3]

	assert.Equal(t, rec.ID, output.ApplicationID)
	assert.Equal(t, rec, output.Application)
	assert.Equal(t, "Ada Lovelace", rec.Name)
	assert.Equal(t, "(555) 123-4567", rec.ContactNumber)
	assert.Equal(t, "ada.png", rec.Photo)
	assert.Equal(t, "", rec.Documents)
	assert.NotEmpty(t, rec.SubmittedAt)

	assert.Equal(t, "admission-form-Ada-Lovelace.pdf", output.ReceiptFilename)
	pdf := fx.ReadDownload(t, output.ReceiptFilename)
	assert.Equal(t, "%PDF", string(pdf[:4]))

	assert.Equal(t, admissions.ApplicationForm{}, output.Form)
}

func TestExecute_ValidationFailure(t *testing.T) {
	handler, fx := createTestHandler(t)
	fx.Seed(t, admissionstest.Records()...)

	input := createTestInput()
	input.Application.Email = ""
	input.Application.DateOfBirth = ""

	output, err := handler.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeApplicationValidationFailed, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Equal(t, map[string]string{
		"email":       "Email is required",
		"dateOfBirth": "Date of birth is required",
	}, stdErr.Metadata["fieldErrors"])

	assert.Len(t, fx.Stored(t), 3)
}

func TestExecute_StorageUnreadable(t *testing.T) {
	handler, fx := createTestHandler(t)
	require.NoError(t, fx.Store.Set(context.Background(), admissionstest.ApplicationsKey, `{"not":"an array"}`))

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	stored := fx.Stored(t)
	require.Len(t, stored, 1)
	assert.Equal(t, output.ApplicationID, stored[0].ID)
}
