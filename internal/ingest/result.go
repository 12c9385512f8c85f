package ingest

// Result holds the outcome of an ingest operation.
type Result struct {
	RecordsParsed   int    `json:"records_parsed"`
	RecordsInserted int64  `json:"records_inserted"`
	Message         string `json:"message,omitempty"`
}
