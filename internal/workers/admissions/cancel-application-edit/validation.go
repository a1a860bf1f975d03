package cancelapplicationedit

import "admissions-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"applicationId": {"type": ["integer", "null"]}
	}
}`)
