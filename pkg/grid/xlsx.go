package grid

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/omnigrid/omnigrid/pkg/directory"
	"github.com/omnigrid/omnigrid/pkg/table"
	"github.com/omnigrid/omnigrid/pkg/workspace"
)

const sheetName = "Sheet1"

// ExportWorkbook renders rows into an xlsx workbook: an ID and Status column
// followed by the schema columns under their labels.
func ExportWorkbook(ws *workspace.Workspace, rows []*table.Row) (*excelize.File, error) {
	f := excelize.NewFile()

	header := []string{"ID", "Status"}
	for _, col := range ws.Columns {
		header = append(header, col.Label)
	}
	if err := writeRow(f, 1, header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cells := []string{row.ID, string(row.Status)}
		for _, col := range ws.Columns {
			cells = append(cells, row.FieldString(col.Field))
		}
		if err := writeRow(f, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ImportWorkbook parses the first sheet of an xlsx workbook into new DRAFT
// rows owned by actor. Header cells are matched against column labels or
// field keys, case-insensitively; unmatched headers are ignored. Cells in
// matched columns are coerced against the column type, and fields absent
// from the sheet keep their typed zero values. Any structural problem aborts
// the whole import.
func ImportWorkbook(r io.Reader, ws *workspace.Workspace, actor directory.User, now time.Time) ([]*table.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	// Map sheet columns to schema fields by label or field key.
	fieldByCol := make(map[int]workspace.ColumnSpec)
	for i, head := range cells[0] {
		for _, col := range ws.Columns {
			if strings.EqualFold(head, col.Label) || strings.EqualFold(head, col.Field) {
				fieldByCol[i] = col
				break
			}
		}
	}
	if len(fieldByCol) == 0 {
		return nil, fmt.Errorf("no header matches any column of workspace %s", ws.ID)
	}

	var rows []*table.Row
	for _, line := range cells[1:] {
		if blankLine(line) {
			continue
		}
		row := table.NewRow("", ws.ID, actor.ID, now, ws.Columns)
		for i, raw := range line {
			col, mapped := fieldByCol[i]
			if !mapped || raw == "" {
				continue
			}
			row.Fields[col.Field] = table.Coerce(col.Type, raw)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeRow(f *excelize.File, rowNum int, cells []string) error {
	for i, cell := range cells {
		name, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, name, cell); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", name, err)
		}
	}
	return nil
}

func blankLine(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
