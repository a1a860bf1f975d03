package listapplications

import "admissions-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"searchTerm": {"type": ["string", "null"]},
		"course": {"type": ["string", "null"]}
	}
}`)
