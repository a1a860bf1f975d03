package saveapplicationedit

import (
	"context"
	"testing"

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
	fx.Seed(t, admissionstest.Records()...)
	return NewHandler(&Config{}, fx.Service.Registry, logger.NewTestLogger(t)), fx
}

func beginEdit(t *testing.T, fx *admissionstest.Fixture, id int64) {
	t.Helper()
	_, err := fx.Service.Registry.BeginEdit(context.Background(), id)
	require.NoError(t, err)
}

func TestExecute_ChangesOnlyTargetedFields(t *testing.T) {
	handler, fx := createTestHandler(t)
	beginEdit(t, fx, 2)
	before := fx.Stored(t)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: 2,
		Changes:       map[string]string{"email": "grace@example.org"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"email"}, output.UpdatedFields)
	assert.Equal(t, "grace@example.org", output.Application.Email)

	after := fx.Stored(t)
	require.Len(t, after, 3)
	expected := before[1]
	expected.Email = "grace@example.org"
	assert.Equal(t, expected, after[1])
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])

	_, open := fx.Service.Registry.ActiveEdit()
	assert.False(t, open)
}

func TestExecute_IncludesDraftChanges(t *testing.T) {
	handler, fx := createTestHandler(t)
	beginEdit(t, fx, 1)
	_, err := fx.Service.Registry.UpdateDraft(1, map[string]string{"name": "Augusta Ada King"})
	require.NoError(t, err)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: 1,
		Changes:       map[string]string{"selectedCourse": "Artificial Intelligence"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "selectedCourse"}, output.UpdatedFields)
	stored := fx.Stored(t)[0]
	assert.Equal(t, "Augusta Ada King", stored.Name)
	assert.Equal(t, "Artificial Intelligence", stored.SelectedCourse)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name         string
		begin        int64
		input        *Input
		expectedCode errors.ErrorCode
		sessionOpen  bool
	}{
		{
			name:         "no active edit",
			input:        &Input{ApplicationID: 1},
			expectedCode: errors.ErrCodeNoActiveEdit,
		},
		{
			name:         "different record",
			begin:        1,
			input:        &Input{ApplicationID: 2},
			expectedCode: errors.ErrCodeEditTargetMismatch,
			sessionOpen:  true,
		},
		{
			name:         "invalid email keeps session",
			begin:        1,
			input:        &Input{ApplicationID: 1, Changes: map[string]string{"email": "nope"}},
			expectedCode: errors.ErrCodeApplicationValidationFailed,
			sessionOpen:  true,
		},
		{
			name:         "id is not editable",
			begin:        1,
			input:        &Input{ApplicationID: 1, Changes: map[string]string{"submittedAt": "2020-01-01"}},
			expectedCode: errors.ErrCodeApplicationValidationFailed,
			sessionOpen:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, fx := createTestHandler(t)
			if tt.begin != 0 {
				beginEdit(t, fx, tt.begin)
			}
			before := fx.Stored(t)

			_, err := handler.Execute(context.Background(), tt.input)

			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.expectedCode, stdErr.Code)
			assert.Equal(t, before, fx.Stored(t))

			_, open := fx.Service.Registry.ActiveEdit()
			assert.Equal(t, tt.sessionOpen, open)
		})
	}
}

func TestExecute_RecordDeletedDuringEdit(t *testing.T) {
	handler, fx := createTestHandler(t)
	beginEdit(t, fx, 3)
	fx.Seed(t, admissionstest.Records()[:2]...)

	_, err := handler.Execute(context.Background(), &Input{
		ApplicationID: 3,
		Changes:       map[string]string{"name": "Alan M. Turing"},
	})

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeApplicationNotFound, stdErr.Code)

	_, open := fx.Service.Registry.ActiveEdit()
	assert.False(t, open)
	assert.Len(t, fx.Stored(t), 2)
}
