package admissions

import (
	"bytes"
	"encoding/csv"
	"time"

	"admissions-workers/internal/models"
)

var exportHeader = []string{"Name", "Email", "Contact", "Course", "Date of Birth", "Submitted At"}

// CSVExporter renders a registry view as CSV.
type CSVExporter struct {
	location   *time.Location
	dateLayout string
}

func NewCSVExporter(loc *time.Location, dateLayout string) *CSVExporter {
	if loc == nil {
		loc = time.UTC
	}
	if dateLayout == "" {
		dateLayout = "1/2/2006"
	}
	return &CSVExporter{location: loc, dateLayout: dateLayout}
}

// Render writes the header and one row per record. Lines are joined with
// "\n" and there is no trailing newline.
func (e *CSVExporter) Render(records []models.ApplicationRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.Name,
			r.Email,
			r.ContactNumber,
			r.SelectedCourse,
			r.DateOfBirth,
			e.localDate(r.SubmittedAt),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// localDate renders an ISO timestamp as M/D/YYYY. Unparseable values pass through unchanged.
func (e *CSVExporter) localDate(submittedAt string) string {
	t, err := time.Parse(time.RFC3339Nano, submittedAt)
	if err != nil {
		return submittedAt
	}
	return t.In(e.location).Format(e.dateLayout)
}
