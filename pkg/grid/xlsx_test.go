package grid

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnigrid/omnigrid/pkg/directory"
	"github.com/omnigrid/omnigrid/pkg/table"
)

func TestWorkbookRoundTrip(t *testing.T) {
	ws := gridWorkspace()
	rows := gridRows(t)
	actor := directory.User{ID: "3", Name: "Carol Ives", SystemRole: directory.RoleMember, GroupID: "G-GENERAL"}

	f, err := ExportWorkbook(ws, rows)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	imported, err := ImportWorkbook(&buf, ws, actor, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, imported, 3)

	first := imported[0]
	assert.Equal(t, table.StatusDraft, first.Status, "imports always land as drafts")
	assert.Equal(t, "3", first.OwnerID)
	assert.Equal(t, "", first.ID, "IDs are assigned on insert, not on parse")
	assert.Equal(t, "Team Offsite", first.FieldString("title"))
	assert.Equal(t, "1250.5", first.FieldString("amount"))
}

func TestImportWorkbook(t *testing.T) {
	ws := gridWorkspace()
	actor := directory.User{ID: "3", Name: "Carol Ives"}
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("field keys accepted as headers", func(t *testing.T) {
		f, err := ExportWorkbook(ws, nil)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", "C1", "amount"))
		require.NoError(t, f.SetCellValue("Sheet1", "C2", "700"))

		var buf bytes.Buffer
		require.NoError(t, f.Write(&buf))

		rows, err := ImportWorkbook(&buf, ws, actor, now)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "700", rows[0].FieldString("amount"))
	})

	t.Run("unmatched sheet aborts", func(t *testing.T) {
		other := gridWorkspace()
		other.Columns[0].Field = "reason"
		other.Columns[0].Label = "Why"
		other.Columns[1].Field = "total"
		other.Columns[1].Label = "Total"

		f, err := ExportWorkbook(ws, gridRows(t))
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, f.Write(&buf))

		_, err = ImportWorkbook(&buf, other, actor, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no header matches")
	})

	t.Run("garbage input aborts", func(t *testing.T) {
		_, err := ImportWorkbook(strings.NewReader("not a workbook"), ws, actor, now)
		require.Error(t, err)
	})
}

func TestParseUserMatrix(t *testing.T) {
	t.Run("roster with manager links", func(t *testing.T) {
		users, err := ParseUserMatrix([][]string{
			{"ID", "Name", "Role", "Group", "Manager"},
			{"1", "Alice Chen", "ADMIN", "G-VP", ""},
			{"2", "Bob Diaz", "leader", "G-MANAGER", "1"},
			{"3", "Carol Ives", "Member", "G-GENERAL", "2"},
		})
		require.NoError(t, err)
		require.Len(t, users, 3)

		assert.Equal(t, directory.RoleLeader, users[1].SystemRole, "role parsing is case-insensitive")
		assert.Equal(t, "2", users[2].ManagerID)
	})

	t.Run("missing required column", func(t *testing.T) {
		_, err := ParseUserMatrix([][]string{
			{"ID", "Name"},
			{"1", "Alice Chen"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "role")
	})

	t.Run("invalid role aborts with the line number", func(t *testing.T) {
		_, err := ParseUserMatrix([][]string{
			{"ID", "Name", "Role"},
			{"1", "Alice Chen", "OVERLORD"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("blank lines skipped", func(t *testing.T) {
		users, err := ParseUserMatrix([][]string{
			{"ID", "Name", "Role"},
			{"", "", ""},
			{"1", "Alice Chen", "ADMIN"},
		})
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}
