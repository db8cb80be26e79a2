package access

import (
	"github.com/omnigrid/omnigrid/pkg/directory"
	"github.com/omnigrid/omnigrid/pkg/table"
	"github.com/omnigrid/omnigrid/pkg/workspace"
)

// SubordinateResolver answers transitive reporting-chain membership.
// *directory.Directory satisfies it.
type SubordinateResolver interface {
	IsSubordinate(leaderID, userID string) bool
}

// IsWorkspaceAdmin reports whether the user administers the workspace, either
// through the global ADMIN role or through the workspace's admin list.
func IsWorkspaceAdmin(u directory.User, ws *workspace.Workspace) bool {
	if u.SystemRole == directory.RoleAdmin {
		return true
	}
	return ws != nil && ws.IsAdmin(u.ID)
}

// CanViewRowGlobal decides row visibility without workspace context: global
// ADMIN, row owner, or a LEADER whose reporting chain reaches the owner.
func CanViewRowGlobal(u directory.User, row *table.Row, resolver SubordinateResolver) bool {
	if u.SystemRole == directory.RoleAdmin {
		return true
	}
	if u.ID == row.OwnerID {
		return true
	}
	if u.SystemRole == directory.RoleLeader && resolver.IsSubordinate(u.ID, row.OwnerID) {
		return true
	}
	return false
}

// CanViewRowInWorkspace decides row visibility with workspace context. It
// adds the workspace-admin override on top of the global rules; a
// workspace admin sees every row of their workspace.
func CanViewRowInWorkspace(u directory.User, row *table.Row, resolver SubordinateResolver, ws *workspace.Workspace) bool {
	if IsWorkspaceAdmin(u, ws) {
		return true
	}
	return CanViewRowGlobal(u, row, resolver)
}

// ColumnAccess resolves the effective access level of one user on one field
// of one row. Decision order:
//
//  1. workspace admins write everything, lifecycle locks included
//  2. status is writable by everyone (see package doc)
//  3. remaining meta fields are read-only
//  4. a field absent from the schema yields NONE
//  5. otherwise the group permission applies, defaulting NONE
//  6. a base WRITE is then downgraded by the row lifecycle: drafts are only
//     writable by their owner, approved and rejected rows are locked for
//     everyone, pending rows stay writable
//
// The lifecycle step only ever downgrades WRITE to READ; a configured READ or
// NONE is never upgraded.
func ColumnAccess(u directory.User, row *table.Row, field string, ws *workspace.Workspace) workspace.AccessLevel {
	if IsWorkspaceAdmin(u, ws) {
		return workspace.AccessWrite
	}
	if field == table.MetaStatus {
		return workspace.AccessWrite
	}
	switch field {
	case table.MetaID, table.MetaUpdatedAt, table.MetaOwnerID, table.MetaVersion:
		return workspace.AccessRead
	}

	col, ok := ws.Column(field)
	if !ok {
		return workspace.AccessNone
	}

	level := col.Permission(u.GroupID)
	if level != workspace.AccessWrite {
		return level
	}

	switch row.Status {
	case table.StatusDraft:
		if u.ID != row.OwnerID {
			return workspace.AccessRead
		}
	case table.StatusApproved, table.StatusRejected:
		return workspace.AccessRead
	}
	return workspace.AccessWrite
}
