package grid

import (
	"strings"

	"github.com/omnigrid/omnigrid/pkg/mutation"
	"github.com/omnigrid/omnigrid/pkg/table"
	"github.com/omnigrid/omnigrid/pkg/workspace"
)

// Selection is an inclusive rectangle of grid cells in visible coordinates:
// row indexes into the listed rows, column indexes into GridColumns.
type Selection struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// normalized returns the selection with start <= end on both axes
func (s Selection) normalized() Selection {
	if s.StartRow > s.EndRow {
		s.StartRow, s.EndRow = s.EndRow, s.StartRow
	}
	if s.StartCol > s.EndCol {
		s.StartCol, s.EndCol = s.EndCol, s.StartCol
	}
	return s
}

// GridColumns returns the editable column keys in display order: the status
// pseudo-column first, then the schema fields.
func GridColumns(ws *workspace.Workspace) []string {
	fields := make([]string, 0, len(ws.Columns)+1)
	fields = append(fields, table.MetaStatus)
	for _, col := range ws.Columns {
		fields = append(fields, col.Field)
	}
	return fields
}

// ParseClipboard splits clipboard text into a cell matrix. Tabs separate
// cells, newlines separate rows; one trailing newline is dropped, as
// spreadsheets append one on copy.
func ParseClipboard(text string) [][]string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	matrix := make([][]string, len(lines))
	for i, line := range lines {
		matrix[i] = strings.Split(line, "\t")
	}
	return matrix
}

// ExpandPaste maps a pasted matrix onto the grid as cell updates. A single
// pasted cell fills the whole selection; anything larger is anchored at the
// selection's top-left corner and clipped to the grid bounds.
func ExpandPaste(matrix [][]string, sel Selection, rows []*table.Row, fields []string) []mutation.CellUpdate {
	if len(matrix) == 0 {
		return nil
	}
	sel = sel.normalized()

	var updates []mutation.CellUpdate
	put := func(rowIdx, colIdx int, value string) {
		if rowIdx < 0 || rowIdx >= len(rows) || colIdx < 0 || colIdx >= len(fields) {
			return
		}
		updates = append(updates, mutation.CellUpdate{
			RowID: rows[rowIdx].ID,
			Field: fields[colIdx],
			Value: value,
		})
	}

	if len(matrix) == 1 && len(matrix[0]) == 1 {
		for r := sel.StartRow; r <= sel.EndRow; r++ {
			for c := sel.StartCol; c <= sel.EndCol; c++ {
				put(r, c, matrix[0][0])
			}
		}
		return updates
	}

	for i, line := range matrix {
		for j, value := range line {
			put(sel.StartRow+i, sel.StartCol+j, value)
		}
	}
	return updates
}

// CopyRegion renders the selected cells as tab-separated text for the
// clipboard, using each cell's canonical string form.
func CopyRegion(sel Selection, rows []*table.Row, fields []string) string {
	sel = sel.normalized()

	var b strings.Builder
	for r := sel.StartRow; r <= sel.EndRow; r++ {
		if r < 0 || r >= len(rows) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		for c := sel.StartCol; c <= sel.EndCol; c++ {
			if c > sel.StartCol {
				b.WriteByte('\t')
			}
			if c < 0 || c >= len(fields) {
				continue
			}
			b.WriteString(rows[r].FieldString(fields[c]))
		}
	}
	return b.String()
}
