package submitapplication

import "admissions-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"application": {
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"dateOfBirth": {"type": "string"},
				"email": {"type": "string"},
				"contactNumber": {"type": "string"},
				"selectedCourse": {"type": "string"},
				"photo": {
					"type": ["object", "null"],
					"properties": {"name": {"type": "string"}}
				},
				"documents": {
					"type": ["object", "null"],
					"properties": {"name": {"type": "string"}}
				}
			}
		}
	},
	"required": ["application"]
}`)
