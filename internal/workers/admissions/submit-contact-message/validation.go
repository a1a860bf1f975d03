package submitcontactmessage

import "admissions-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"email": {"type": "string"},
		"message": {"type": "string"}
	},
	"required": ["name", "email", "message"]
}`)
