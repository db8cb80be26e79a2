package audit

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
)

// exportJSON exports audit entries as a JSON array
func exportJSON(entries []Entry) ([]byte, error) {
	return json.MarshalIndent(entries, "", "  ")
}

// exportNDJSON exports audit entries as newline-delimited JSON
func exportNDJSON(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)

	for _, e := range entries {
		if err := encoder.Encode(e); err != nil {
			return nil, fmt.Errorf("failed to encode entry: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// exportCSV exports audit entries as CSV
func exportCSV(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"ID",
		"Timestamp",
		"WorkspaceID",
		"RowID",
		"Operator",
		"Field",
		"OldValue",
		"NewValue",
	}

	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.ID,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.WorkspaceID,
			e.RowID,
			e.OperatorName,
			e.Field,
			e.OldValue,
			e.NewValue,
		}

		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
