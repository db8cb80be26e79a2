package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	d := New()

	require.NoError(t, d.AddGroup(RoleGroup{ID: "G-GENERAL", Name: "General Staff", DisplayColor: "blue"}))
	require.NoError(t, d.AddGroup(RoleGroup{ID: "G-MANAGER", Name: "Department Managers", DisplayColor: "emerald"}))

	users := []User{
		{ID: "1", Name: "Root Admin", SystemRole: RoleAdmin, GroupID: "G-MANAGER"},
		{ID: "2", Name: "East Region Lead", SystemRole: RoleLeader, GroupID: "G-MANAGER"},
		{ID: "3", Name: "Sales A", SystemRole: RoleMember, GroupID: "G-GENERAL", ManagerID: "2"},
		{ID: "4", Name: "Sales B", SystemRole: RoleMember, GroupID: "G-GENERAL", ManagerID: "2"},
		{ID: "5", Name: "Tech Lead", SystemRole: RoleLeader, GroupID: "G-MANAGER", ManagerID: "1"},
		{ID: "6", Name: "Engineer", SystemRole: RoleMember, GroupID: "G-GENERAL", ManagerID: "5"},
	}
	for _, u := range users {
		require.NoError(t, d.AddUser(u))
	}
	return d
}

func TestDirectoryUserCRUD(t *testing.T) {
	d := newTestDirectory(t)

	t.Run("duplicate ID rejected", func(t *testing.T) {
		err := d.AddUser(User{ID: "3", Name: "Imposter", SystemRole: RoleMember, GroupID: "G-GENERAL"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		err := d.AddUser(User{ID: "99", Name: "Nobody", SystemRole: "SUPERUSER", GroupID: "G-GENERAL"})
		require.Error(t, err)
	})

	t.Run("update replaces record", func(t *testing.T) {
		u, ok := d.GetUser("3")
		require.True(t, ok)
		u.GroupID = "G-MANAGER"
		require.NoError(t, d.UpdateUser(u))

		got, ok := d.GetUser("3")
		require.True(t, ok)
		assert.Equal(t, "G-MANAGER", got.GroupID)
	})

	t.Run("update of unknown user fails", func(t *testing.T) {
		err := d.UpdateUser(User{ID: "nope", SystemRole: RoleMember})
		require.Error(t, err)
	})

	t.Run("list is sorted by ID", func(t *testing.T) {
		users := d.ListUsers()
		require.Len(t, users, 6)
		for i := 1; i < len(users); i++ {
			assert.Less(t, users[i-1].ID, users[i].ID)
		}
	})
}

func TestSubordinates(t *testing.T) {
	d := newTestDirectory(t)

	t.Run("direct reports", func(t *testing.T) {
		subs := d.Subordinates("2")
		assert.Contains(t, subs, "3")
		assert.Contains(t, subs, "4")
		assert.NotContains(t, subs, "5")
	})

	t.Run("transitive chain", func(t *testing.T) {
		// 1 manages 5, 5 manages 6
		subs := d.Subordinates("1")
		assert.Contains(t, subs, "5")
		assert.Contains(t, subs, "6")
	})

	t.Run("leaf user has no subordinates", func(t *testing.T) {
		assert.Empty(t, d.Subordinates("6"))
	})

	t.Run("IsSubordinate", func(t *testing.T) {
		assert.True(t, d.IsSubordinate("1", "6"))
		assert.False(t, d.IsSubordinate("2", "6"))
	})

	t.Run("dangling manager link resolves gracefully", func(t *testing.T) {
		require.NoError(t, d.AddUser(User{ID: "7", Name: "Orphan", SystemRole: RoleMember, GroupID: "G-GENERAL", ManagerID: "gone"}))
		assert.Empty(t, d.Subordinates("gone-too"))
		assert.True(t, d.IsSubordinate("gone", "7"))
	})
}

func TestSubordinateCacheInvalidation(t *testing.T) {
	d := newTestDirectory(t)

	subs := d.Subordinates("2")
	require.Len(t, subs, 2)

	// Reassign Sales B to the tech lead; the cached closure must be dropped.
	u, ok := d.GetUser("4")
	require.True(t, ok)
	u.ManagerID = "5"
	require.NoError(t, d.UpdateUser(u))

	subs = d.Subordinates("2")
	assert.Len(t, subs, 1)
	assert.Contains(t, d.Subordinates("5"), "4")
}

func TestManagementCycles(t *testing.T) {
	t.Run("cycle terminates traversal", func(t *testing.T) {
		d := New()
		require.NoError(t, d.AddUser(User{ID: "a", Name: "A", SystemRole: RoleLeader, GroupID: "g", ManagerID: "b"}))
		require.NoError(t, d.AddUser(User{ID: "b", Name: "B", SystemRole: RoleLeader, GroupID: "g", ManagerID: "a"}))

		// Each sees the other once; the visited set stops the loop.
		assert.Contains(t, d.Subordinates("a"), "b")
		assert.Contains(t, d.Subordinates("b"), "a")
	})

	t.Run("detect reports the cycle", func(t *testing.T) {
		d := New()
		require.NoError(t, d.AddUser(User{ID: "a", Name: "A", SystemRole: RoleLeader, GroupID: "g", ManagerID: "b"}))
		require.NoError(t, d.AddUser(User{ID: "b", Name: "B", SystemRole: RoleLeader, GroupID: "g", ManagerID: "a"}))

		cycle := d.DetectManagementCycle()
		assert.Len(t, cycle, 2)
	})

	t.Run("forest has no cycle", func(t *testing.T) {
		d := newTestDirectory(t)
		assert.Nil(t, d.DetectManagementCycle())
	})

	t.Run("replace rejects cyclic roster", func(t *testing.T) {
		d := New()
		err := d.ReplaceUsers([]User{
			{ID: "a", Name: "A", SystemRole: RoleMember, GroupID: "g", ManagerID: "b"},
			{ID: "b", Name: "B", SystemRole: RoleMember, GroupID: "g", ManagerID: "a"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cyclic management graph")
	})
}

func TestReplaceUsers(t *testing.T) {
	d := newTestDirectory(t)

	t.Run("swaps the roster atomically", func(t *testing.T) {
		err := d.ReplaceUsers([]User{
			{ID: "x", Name: "X", SystemRole: RoleLeader, GroupID: "G-MANAGER"},
			{ID: "y", Name: "Y", SystemRole: RoleMember, GroupID: "G-GENERAL", ManagerID: "x"},
		})
		require.NoError(t, err)
		assert.Len(t, d.ListUsers(), 2)
		assert.True(t, d.IsSubordinate("x", "y"))
	})

	t.Run("invalid roster keeps current state", func(t *testing.T) {
		before := d.ListUsers()
		err := d.ReplaceUsers([]User{
			{ID: "x", Name: "X", SystemRole: RoleMember, GroupID: "g"},
			{ID: "x", Name: "Dup", SystemRole: RoleMember, GroupID: "g"},
		})
		require.Error(t, err)
		assert.Equal(t, before, d.ListUsers())
	})
}

func TestGroups(t *testing.T) {
	d := newTestDirectory(t)

	t.Run("duplicate group rejected", func(t *testing.T) {
		require.Error(t, d.AddGroup(RoleGroup{ID: "G-GENERAL", Name: "Again"}))
	})

	t.Run("delete leaves members dangling", func(t *testing.T) {
		require.NoError(t, d.DeleteGroup("G-GENERAL"))
		_, ok := d.GetGroup("G-GENERAL")
		assert.False(t, ok)

		u, ok := d.GetUser("3")
		require.True(t, ok)
		assert.Equal(t, "G-GENERAL", u.GroupID)
	})
}

func TestRevisionBumps(t *testing.T) {
	d := New()
	r0 := d.Revision()
	require.NoError(t, d.AddGroup(RoleGroup{ID: "g", Name: "G"}))
	require.NoError(t, d.AddUser(User{ID: "1", Name: "One", SystemRole: RoleMember, GroupID: "g"}))
	assert.Equal(t, r0+2, d.Revision())
}
