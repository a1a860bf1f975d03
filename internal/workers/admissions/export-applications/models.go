package exportapplications

type Input struct {
	SearchTerm string `json:"searchTerm"`
	Course     string `json:"course"`
}

type Output struct {
	Filename    string `json:"exportFilename"`
	Location    string `json:"exportLocation"`
	ContentType string `json:"exportContentType"`
	Size        int    `json:"exportSize"`
	Rows        int    `json:"exportRows"`
}
