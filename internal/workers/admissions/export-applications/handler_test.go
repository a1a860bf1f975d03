package exportapplications

import (
	"context"
	"strings"
	"testing"

	"admissions-workers/internal/admissions/admissionstest"
	"admissions-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) (*Handler, *admissionstest.Fixture) {
	fx := admissionstest.New(t)
	return NewHandler(&Config{}, fx.Service.Registry, logger.NewTestLogger(t)), fx
}

func TestExecute_FilteredView(t *testing.T) {
	handler, fx := createTestHandler(t)
	fx.Seed(t, admissionstest.Records()...)
	before := fx.Stored(t)

	output, err := handler.Execute(context.Background(), &Input{SearchTerm: "ada"})
	require.NoError(t, err)

	assert.Equal(t, "student_applications.csv", output.Filename)
	assert.Equal(t, "text/csv;charset=utf-8;", output.ContentType)
	assert.Equal(t, 1, output.Rows)

	body := string(fx.ReadDownload(t, output.Filename))
	lines := strings.Split(body, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,Email,Contact,Course,Date of Birth,Submitted At", lines[0])
	assert.Equal(t, "Ada Lovelace,ada@example.com,555-123-4567,Data Science,2000-01-01,1/2/2024", lines[1])
	assert.Equal(t, len(body), output.Size)

	assert.Equal(t, before, fx.Stored(t), "export must not write to the store")
}

func TestExecute_QuotesFieldsWithCommas(t *testing.T) {
	handler, fx := createTestHandler(t)
	fx.Seed(t, admissionstest.Record(5, "Hopper, Grace", "grace@navy.mil", "Computer Science & Engineering"))

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	body := string(fx.ReadDownload(t, output.Filename))
	assert.Contains(t, body, `"Hopper, Grace",grace@navy.mil,555-123-4567,Computer Science & Engineering,`)
	assert.Equal(t, 1, output.Rows)
}

func TestExecute_EmptyView(t *testing.T) {
	handler, fx := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, 0, output.Rows)
	assert.Equal(t, "Name,Email,Contact,Course,Date of Birth,Submitted At",
		string(fx.ReadDownload(t, output.Filename)))
}
