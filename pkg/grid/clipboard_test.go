package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnigrid/omnigrid/pkg/mutation"
	"github.com/omnigrid/omnigrid/pkg/table"
	"github.com/omnigrid/omnigrid/pkg/workspace"
)

func gridWorkspace() *workspace.Workspace {
	return &workspace.Workspace{
		ID:   "WS-FINANCE",
		Name: "Expense Approval",
		Columns: []workspace.ColumnSpec{
			{Field: "title", Label: "Reason", Type: workspace.FieldText},
			{Field: "amount", Label: "Amount", Type: workspace.FieldNumber},
		},
	}
}

func gridRows(t *testing.T) []*table.Row {
	t.Helper()
	now := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	ws := gridWorkspace()

	var rows []*table.Row
	for _, id := range []string{"R-1", "R-2", "R-3"} {
		rows = append(rows, table.NewRow(id, ws.ID, "3", now, ws.Columns))
	}
	rows[0].Fields["title"] = table.Text("Team Offsite")
	rows[0].Fields["amount"] = table.Number(1250.5)
	return rows
}

func TestGridColumns(t *testing.T) {
	assert.Equal(t, []string{"status", "title", "amount"}, GridColumns(gridWorkspace()))
}

func TestParseClipboard(t *testing.T) {
	t.Run("matrix with trailing newline", func(t *testing.T) {
		matrix := ParseClipboard("a\tb\nc\td\n")
		assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, matrix)
	})

	t.Run("windows line endings", func(t *testing.T) {
		matrix := ParseClipboard("a\tb\r\nc\td\r\n")
		assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, matrix)
	})

	t.Run("empty cells survive", func(t *testing.T) {
		matrix := ParseClipboard("a\t\tb")
		assert.Equal(t, [][]string{{"a", "", "b"}}, matrix)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Nil(t, ParseClipboard(""))
	})
}

func TestExpandPaste(t *testing.T) {
	rows := gridRows(t)
	fields := GridColumns(gridWorkspace())

	t.Run("single cell fills the selection", func(t *testing.T) {
		sel := Selection{StartRow: 0, StartCol: 2, EndRow: 2, EndCol: 2}
		updates := ExpandPaste([][]string{{"99"}}, sel, rows, fields)

		require.Len(t, updates, 3)
		for i, upd := range updates {
			assert.Equal(t, rows[i].ID, upd.RowID)
			assert.Equal(t, "amount", upd.Field)
			assert.Equal(t, "99", upd.Value)
		}
	})

	t.Run("matrix anchors at the selection top-left", func(t *testing.T) {
		sel := Selection{StartRow: 1, StartCol: 1, EndRow: 1, EndCol: 1}
		updates := ExpandPaste([][]string{{"Lunch", "42"}, {"Taxi", "18"}}, sel, rows, fields)

		assert.Equal(t, []mutation.CellUpdate{
			{RowID: "R-2", Field: "title", Value: "Lunch"},
			{RowID: "R-2", Field: "amount", Value: "42"},
			{RowID: "R-3", Field: "title", Value: "Taxi"},
			{RowID: "R-3", Field: "amount", Value: "18"},
		}, updates)
	})

	t.Run("overflow is clipped to the grid", func(t *testing.T) {
		sel := Selection{StartRow: 2, StartCol: 2, EndRow: 2, EndCol: 2}
		updates := ExpandPaste([][]string{{"1", "2"}, {"3", "4"}}, sel, rows, fields)

		assert.Equal(t, []mutation.CellUpdate{
			{RowID: "R-3", Field: "amount", Value: "1"},
		}, updates)
	})

	t.Run("inverted selection is normalized", func(t *testing.T) {
		sel := Selection{StartRow: 2, StartCol: 2, EndRow: 0, EndCol: 2}
		updates := ExpandPaste([][]string{{"7"}}, sel, rows, fields)
		assert.Len(t, updates, 3)
	})
}

func TestCopyRegion(t *testing.T) {
	rows := gridRows(t)
	fields := GridColumns(gridWorkspace())

	t.Run("renders canonical strings", func(t *testing.T) {
		sel := Selection{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 2}
		assert.Equal(t, "Draft\tTeam Offsite\t1250.5", CopyRegion(sel, rows, fields))
	})

	t.Run("multi-row region", func(t *testing.T) {
		sel := Selection{StartRow: 0, StartCol: 1, EndRow: 1, EndCol: 2}
		assert.Equal(t, "Team Offsite\t1250.5\n\t0", CopyRegion(sel, rows, fields))
	})
}
