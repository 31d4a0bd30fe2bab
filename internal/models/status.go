package models

import "time"

// DatasetStatus describes the dataset the server was started with.
type DatasetStatus struct {
	Source           string   `json:"source"`
	Records          int      `json:"records"`
	LoadedAt         int64    `json:"loadedAt"`
	ReadableLoadedAt string   `json:"readableLoadedAt"`
	Environment      string   `json:"environment"`
	Columns          []string `json:"columns"`
}

// NewDatasetStatus builds a DatasetStatus; loadedAt is reported in Unix milliseconds.
func NewDatasetStatus(source string, records int, loadedAt time.Time, environment string, columns []string) DatasetStatus {
	return DatasetStatus{
		Source:           source,
		Records:          records,
		LoadedAt:         loadedAt.UnixNano() / int64(time.Millisecond),
		ReadableLoadedAt: loadedAt.Format(time.RFC3339),
		Environment:      environment,
		Columns:          columns,
	}
}
