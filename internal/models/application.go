// internal/models/application.go
package models

// ApplicationRecord is one submitted admission application as stored under
// the applications key. Photo and Documents hold uploaded file names only.
type ApplicationRecord struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	DateOfBirth    string `json:"dateOfBirth"`
	Email          string `json:"email"`
	ContactNumber  string `json:"contactNumber"`
	SelectedCourse string `json:"selectedCourse"`
	Photo          string `json:"photo"`
	Documents      string `json:"documents"`
	SubmittedAt    string `json:"submittedAt"`
}

// Editable application fields, keyed by their JSON names.
const (
	FieldName           = "name"
	FieldDateOfBirth    = "dateOfBirth"
	FieldEmail          = "email"
	FieldContactNumber  = "contactNumber"
	FieldSelectedCourse = "selectedCourse"
	FieldMessage        = "message"
)

// EditableFields lists the fields an admin may change on a stored record.
var EditableFields = []string{FieldName, FieldEmail, FieldContactNumber, FieldSelectedCourse}

// FieldValue returns the value of an editable field by JSON name.
func (r ApplicationRecord) FieldValue(field string) (string, bool) {
	switch field {
	case FieldName:
		return r.Name, true
	case FieldEmail:
		return r.Email, true
	case FieldContactNumber:
		return r.ContactNumber, true
	case FieldSelectedCourse:
		return r.SelectedCourse, true
	}
	return "", false
}

// SetField assigns an editable field by JSON name. It reports false for
// fields that are not editable.
func (r *ApplicationRecord) SetField(field, value string) bool {
	switch field {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldContactNumber:
		r.ContactNumber = value
	case FieldSelectedCourse:
		r.SelectedCourse = value
	default:
		return false
	}
	return true
}
