package metrics

type StageMetrics struct {
	LocateMS       int64 `json:"locate_ms"`
	ExtractMS      int64 `json:"extract_ms"`
	SortMS         int64 `json:"sort_ms"`
	TableMS        int64 `json:"table_ms"`
	ReportMS       int64 `json:"report_ms"`
	EntriesSeen    int   `json:"entries_seen"`
	FoldersSkipped int   `json:"folders_skipped"`
	RunsParsed     int   `json:"runs_parsed"`
	XMLBytesRead   int64 `json:"xml_bytes_read"`
}
