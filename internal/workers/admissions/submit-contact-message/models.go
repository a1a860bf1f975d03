package submitcontactmessage

type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type Output struct {
	MessageID   int64  `json:"contactMessageId"`
	SubmittedAt string `json:"submittedAt"`
}
