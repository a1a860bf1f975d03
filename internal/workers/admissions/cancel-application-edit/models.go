package cancelapplicationedit

// Input optionally names the record the caller believes is under edit.
// Zero cancels whatever session is open.
type Input struct {
	ApplicationID int64 `json:"applicationId"`
}

type Output struct {
	Cancelled     bool  `json:"editCancelled"`
	ApplicationID int64 `json:"applicationId,omitempty"`
}
