package audit

import "time"

// Entry is one field-level change record. OldValue and NewValue carry the
// canonical string form of the cell before and after the write.
type Entry struct {
	ID           string    `json:"id"`
	RowID        string    `json:"row_id"`
	WorkspaceID  string    `json:"workspace_id"`
	OperatorName string    `json:"operator_name"`
	Field        string    `json:"field"`
	OldValue     string    `json:"old_value"`
	NewValue     string    `json:"new_value"`
	Timestamp    time.Time `json:"timestamp"`
}

// Filter narrows a Search. Zero fields match everything; Since/Until are
// inclusive bounds on the entry timestamp.
type Filter struct {
	RowID        string
	WorkspaceID  string
	OperatorName string
	Field        string
	Since        time.Time
	Until        time.Time
	Limit        int
	Offset       int
}

// Stats summarizes the log for the audit console
type Stats struct {
	TotalEntries int            `json:"total_entries"`
	ByWorkspace  map[string]int `json:"by_workspace"`
	ByOperator   map[string]int `json:"by_operator"`
	ByField      map[string]int `json:"by_field"`
	FirstEntry   time.Time      `json:"first_entry,omitempty"`
	LastEntry    time.Time      `json:"last_entry,omitempty"`
}

// ExportFormat selects the serialization used by Export
type ExportFormat string

const (
	ExportFormatJSON   ExportFormat = "json"
	ExportFormatCSV    ExportFormat = "csv"
	ExportFormatNDJSON ExportFormat = "ndjson"
)
