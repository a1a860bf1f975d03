package admissions

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"admissions-workers/internal/models"

	"github.com/jung-kurt/gofpdf"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ReceiptFilename is admission-form-<name>.pdf with every whitespace run
// in the name replaced by a single hyphen.
func ReceiptFilename(name string) string {
	return "admission-form-" + whitespaceRun.ReplaceAllString(name, "-") + ".pdf"
}

// ReceiptGenerator renders the one-page PDF handed to the applicant.
type ReceiptGenerator struct {
	institution string
	formTitle   string
	location    *time.Location
	dateLayout  string
	compress    bool
}

func NewReceiptGenerator(institution, formTitle string, loc *time.Location) *ReceiptGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &ReceiptGenerator{
		institution: institution,
		formTitle:   formTitle,
		location:    loc,
		dateLayout:  "1/2/2006",
		compress:    true,
	}
}

// Render lays the receipt out on A4 in millimetres.
func (g *ReceiptGenerator) Render(rec models.ApplicationRecord, submitted time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(g.compress)
	pdf.SetTitle(g.formTitle, true)
	pdf.SetAuthor(g.institution, true)
	pdf.AddPage()

	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "", 20)
	pdf.Text(20, 30, tr(g.institution))
	pdf.SetFont("Helvetica", "", 16)
	pdf.Text(20, 45, tr(g.formTitle))

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(20, 65, fmt.Sprintf("Application ID: APP%d", rec.ID))
	pdf.Text(20, 75, "Submitted on: "+submitted.In(g.location).Format(g.dateLayout))

	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(20, 95, "Student Information:")

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		"Name: " + rec.Name,
		"Date of Birth: " + rec.DateOfBirth,
		"Email: " + rec.Email,
		"Contact Number: " + rec.ContactNumber,
		"Selected Course: " + rec.SelectedCourse,
	}
	for n, line := range lines {
		pdf.Text(25, 110+float64(n)*15, tr(line))
	}
	if rec.Photo != "" {
		pdf.Text(25, 185, tr("Photo: "+rec.Photo))
	}
	if rec.Documents != "" {
		pdf.Text(25, 200, tr("Documents: "+rec.Documents))
	}

	pdf.Text(20, 250, "Thank you for your application!")
	pdf.Text(20, 265, "We will contact you soon with further details.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
