package searchcourses

import "admissions-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"searchTerm": {"type": ["string", "null"], "maxLength": 200},
		"category": {"type": ["string", "null"]}
	}
}`)
