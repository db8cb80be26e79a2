package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnigrid/omnigrid/pkg/directory"
	"github.com/omnigrid/omnigrid/pkg/table"
	"github.com/omnigrid/omnigrid/pkg/workspace"
)

func testDirectory(t *testing.T) *directory.Directory {
	t.Helper()
	d := directory.New()
	users := []directory.User{
		{ID: "1", Name: "Alice Chen", SystemRole: directory.RoleAdmin, GroupID: "G-VP"},
		{ID: "2", Name: "Bob Diaz", SystemRole: directory.RoleLeader, GroupID: "G-MANAGER"},
		{ID: "3", Name: "Carol Ives", SystemRole: directory.RoleMember, GroupID: "G-GENERAL", ManagerID: "2"},
		{ID: "4", Name: "Dan Kim", SystemRole: directory.RoleLeader, GroupID: "G-MANAGER", ManagerID: "2"},
		{ID: "5", Name: "Eve Moss", SystemRole: directory.RoleMember, GroupID: "G-GENERAL", ManagerID: "4"},
		{ID: "6", Name: "Frank Oduya", SystemRole: directory.RoleMember, GroupID: "G-AUDIT"},
		{ID: "7", Name: "Grace Park", SystemRole: directory.RoleMember, GroupID: "G-GENERAL"},
	}
	for _, u := range users {
		require.NoError(t, d.AddUser(u))
	}
	return d
}

func financeWorkspace() *workspace.Workspace {
	return &workspace.Workspace{
		ID:   "WS-FINANCE",
		Name: "Expense Approval",
		Columns: []workspace.ColumnSpec{
			{
				Field: "title", Label: "Reason", Type: workspace.FieldText,
				GroupPermissions: map[string]workspace.AccessLevel{
					"G-GENERAL": workspace.AccessWrite,
					"G-MANAGER": workspace.AccessRead,
				},
			},
			{
				Field: "amount", Label: "Amount", Type: workspace.FieldNumber, IsSensitive: true,
				GroupPermissions: map[string]workspace.AccessLevel{
					"G-GENERAL": workspace.AccessWrite,
					"G-AUDIT":   workspace.AccessRead,
				},
			},
			{
				Field: "approvalNote", Label: "Review Note", Type: workspace.FieldText,
				GroupPermissions: map[string]workspace.AccessLevel{
					"G-MANAGER": workspace.AccessWrite,
				},
			},
		},
		AdminIDs: []string{"7"},
	}
}

func rowOwnedBy(owner string, status table.Status) *table.Row {
	return &table.Row{
		ID:          "R-1",
		WorkspaceID: "WS-FINANCE",
		Status:      status,
		OwnerID:     owner,
		Version:     1,
		Fields:      map[string]table.Value{"title": table.Text("Team Offsite")},
	}
}

func user(t *testing.T, d *directory.Directory, id string) directory.User {
	t.Helper()
	u, ok := d.GetUser(id)
	require.True(t, ok)
	return u
}

func TestIsWorkspaceAdmin(t *testing.T) {
	d := testDirectory(t)
	ws := financeWorkspace()

	assert.True(t, IsWorkspaceAdmin(user(t, d, "1"), ws), "global admin")
	assert.True(t, IsWorkspaceAdmin(user(t, d, "7"), ws), "listed admin")
	assert.False(t, IsWorkspaceAdmin(user(t, d, "3"), ws))
}

func TestCanViewRowGlobal(t *testing.T) {
	d := testDirectory(t)
	row := rowOwnedBy("5", table.StatusDraft)

	t.Run("admin sees every row", func(t *testing.T) {
		assert.True(t, CanViewRowGlobal(user(t, d, "1"), row, d))
	})

	t.Run("owner sees own row", func(t *testing.T) {
		assert.True(t, CanViewRowGlobal(user(t, d, "5"), row, d))
	})

	t.Run("leader sees direct report", func(t *testing.T) {
		assert.True(t, CanViewRowGlobal(user(t, d, "4"), row, d))
	})

	t.Run("leader sees transitive report", func(t *testing.T) {
		// 2 manages 4 manages 5.
		assert.True(t, CanViewRowGlobal(user(t, d, "2"), row, d))
	})

	t.Run("unrelated member denied", func(t *testing.T) {
		assert.False(t, CanViewRowGlobal(user(t, d, "6"), row, d))
	})

	t.Run("member never gains chain visibility", func(t *testing.T) {
		// 3 reports to 2 but is a MEMBER, not a LEADER.
		assert.False(t, CanViewRowGlobal(user(t, d, "3"), row, d))
	})
}

func TestCanViewRowInWorkspace(t *testing.T) {
	d := testDirectory(t)
	ws := financeWorkspace()
	row := rowOwnedBy("5", table.StatusDraft)

	t.Run("workspace admin override", func(t *testing.T) {
		assert.True(t, CanViewRowInWorkspace(user(t, d, "7"), row, d, ws))
		assert.False(t, CanViewRowGlobal(user(t, d, "7"), row, d),
			"override only applies with workspace context")
	})

	t.Run("override does not travel to other workspaces", func(t *testing.T) {
		other := financeWorkspace()
		other.ID = "WS-HR"
		other.AdminIDs = nil
		assert.False(t, CanViewRowInWorkspace(user(t, d, "7"), row, d, other))
	})

	t.Run("global rules still apply", func(t *testing.T) {
		assert.True(t, CanViewRowInWorkspace(user(t, d, "5"), row, d, ws))
		assert.False(t, CanViewRowInWorkspace(user(t, d, "6"), row, d, ws))
	})
}

func TestColumnAccess(t *testing.T) {
	d := testDirectory(t)
	ws := financeWorkspace()

	t.Run("workspace admin bypasses lifecycle lock", func(t *testing.T) {
		locked := rowOwnedBy("3", table.StatusApproved)
		assert.Equal(t, workspace.AccessWrite, ColumnAccess(user(t, d, "1"), locked, "amount", ws))
		assert.Equal(t, workspace.AccessWrite, ColumnAccess(user(t, d, "7"), locked, "amount", ws))
	})

	t.Run("status writable by everyone", func(t *testing.T) {
		row := rowOwnedBy("3", table.StatusApproved)
		assert.Equal(t, workspace.AccessWrite, ColumnAccess(user(t, d, "6"), row, "status", ws))
	})

	t.Run("meta fields read-only", func(t *testing.T) {
		row := rowOwnedBy("3", table.StatusDraft)
		for _, field := range []string{"id", "updatedAt", "ownerId", "version"} {
			assert.Equal(t, workspace.AccessRead, ColumnAccess(user(t, d, "3"), row, field, ws), field)
		}
	})

	t.Run("unknown field is NONE", func(t *testing.T) {
		row := rowOwnedBy("3", table.StatusDraft)
		assert.Equal(t, workspace.AccessNone, ColumnAccess(user(t, d, "3"), row, "ghost", ws))
	})

	t.Run("group default is NONE", func(t *testing.T) {
		row := rowOwnedBy("3", table.StatusDraft)
		assert.Equal(t, workspace.AccessNone, ColumnAccess(user(t, d, "6"), row, "title", ws))
	})

	t.Run("read never upgraded", func(t *testing.T) {
		// G-AUDIT has READ on amount; pending rows keep base WRITE but a
		// configured READ stays READ.
		row := rowOwnedBy("6", table.StatusPending)
		assert.Equal(t, workspace.AccessRead, ColumnAccess(user(t, d, "6"), row, "amount", ws))
	})
}

func TestLifecycleLock(t *testing.T) {
	d := testDirectory(t)
	ws := financeWorkspace()
	owner := user(t, d, "3")
	// Same group as the owner, not a workspace admin.
	peer := directory.User{ID: "9", SystemRole: directory.RoleMember, GroupID: "G-GENERAL"}

	t.Run("draft writable by owner only", func(t *testing.T) {
		row := rowOwnedBy("3", table.StatusDraft)
		assert.Equal(t, workspace.AccessWrite, ColumnAccess(owner, row, "amount", ws))
		assert.Equal(t, workspace.AccessRead, ColumnAccess(peer, row, "amount", ws))
	})

	t.Run("pending keeps base write", func(t *testing.T) {
		row := rowOwnedBy("3", table.StatusPending)
		assert.Equal(t, workspace.AccessWrite, ColumnAccess(owner, row, "amount", ws))

		reviewer := user(t, d, "2")
		assert.Equal(t, workspace.AccessWrite, ColumnAccess(reviewer, row, "approvalNote", ws))
	})

	t.Run("approved and rejected locked for everyone", func(t *testing.T) {
		for _, status := range []table.Status{table.StatusApproved, table.StatusRejected} {
			row := rowOwnedBy("3", status)
			assert.Equal(t, workspace.AccessRead, ColumnAccess(owner, row, "amount", ws), string(status))
		}
	})

	t.Run("owner walk through lifecycle", func(t *testing.T) {
		row := rowOwnedBy("3", table.StatusDraft)
		assert.Equal(t, workspace.AccessWrite, ColumnAccess(owner, row, "amount", ws))

		row.Status = table.StatusPending
		assert.Equal(t, workspace.AccessWrite, ColumnAccess(owner, row, "amount", ws))

		row.Status = table.StatusApproved
		assert.Equal(t, workspace.AccessRead, ColumnAccess(owner, row, "amount", ws))
	})
}
