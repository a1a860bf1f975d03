package saveapplicationedit

import "admissions-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"applicationId": {"type": "integer"},
		"changes": {
			"type": ["object", "null"],
			"additionalProperties": {"type": "string"}
		}
	},
	"required": ["applicationId"]
}`)
