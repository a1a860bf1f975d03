package deleteapplication

type Input struct {
	ApplicationID int64 `json:"applicationId"`
	Confirmed     bool  `json:"confirmed"`
}

type Output struct {
	ApplicationID int64 `json:"applicationId"`
	Deleted       bool  `json:"deleted"`
}
