package admissions

import (
	"testing"
	"time"

	"admissions-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporter_Render(t *testing.T) {
	e := NewCSVExporter(time.UTC, "1/2/2006")

	t.Run("header only", func(t *testing.T) {
		out, err := e.Render(nil)
		require.NoError(t, err)
		assert.Equal(t, "Name,Email,Contact,Course,Date of Birth,Submitted At", string(out))
	})

	t.Run("fields with commas are quoted", func(t *testing.T) {
		out, err := e.Render([]models.ApplicationRecord{{
			Name: "Doe, Jane", Email: "j@x.io", ContactNumber: "5551234567",
			SelectedCourse: "Computer Science & Engineering", DateOfBirth: "2004-05-06",
			SubmittedAt: "2024-12-31T23:00:00.000Z",
		}})
		require.NoError(t, err)
		assert.Equal(t,
			"Name,Email,Contact,Course,Date of Birth,Submitted At\n"+
				`"Doe, Jane",j@x.io,5551234567,Computer Science & Engineering,2004-05-06,12/31/2024`,
			string(out))
	})

	t.Run("unparseable timestamp passes through", func(t *testing.T) {
		out, err := e.Render([]models.ApplicationRecord{{Name: "A", SubmittedAt: "sometime"}})
		require.NoError(t, err)
		assert.Contains(t, string(out), ",sometime")
	})
}

func TestCSVExporter_Timezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	e := NewCSVExporter(tokyo, "")
	assert.Equal(t, "1/1/2025", e.localDate("2024-12-31T23:00:00.000Z"))
}
