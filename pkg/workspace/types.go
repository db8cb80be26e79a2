package workspace

// AccessLevel represents the access a group has on a column
type AccessLevel string

const (
	AccessNone  AccessLevel = "NONE"
	AccessRead  AccessLevel = "READ"
	AccessWrite AccessLevel = "WRITE"
)

// Next returns the level that follows in the policy console's cycling order:
// NONE -> READ -> WRITE -> NONE
func (l AccessLevel) Next() AccessLevel {
	switch l {
	case AccessNone:
		return AccessRead
	case AccessRead:
		return AccessWrite
	default:
		return AccessNone
	}
}

// FieldType represents the data type of a column
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldSelect FieldType = "select"
	FieldDate   FieldType = "date"
)

// Valid reports whether the field type is one of the known types
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldSelect, FieldDate:
		return true
	}
	return false
}

// ColumnSpec describes one column of a workspace schema. GroupPermissions
// maps role-group IDs to the base access level for this column; groups absent
// from the map get no access.
type ColumnSpec struct {
	Field            string                 `json:"field" yaml:"field"`
	Label            string                 `json:"label" yaml:"label"`
	Type             FieldType              `json:"type" yaml:"type"`
	Options          []string               `json:"options,omitempty" yaml:"options,omitempty"`
	IsSensitive      bool                   `json:"is_sensitive,omitempty" yaml:"sensitive,omitempty"`
	GroupPermissions map[string]AccessLevel `json:"group_permissions,omitempty" yaml:"permissions,omitempty"`
}

// Permission returns the configured level for a group, defaulting to NONE
func (c ColumnSpec) Permission(groupID string) AccessLevel {
	if level, ok := c.GroupPermissions[groupID]; ok {
		return level
	}
	return AccessNone
}

// Workspace is a business process with its own schema and permission matrix.
// An empty ActiveGroupIDs list makes the workspace visible to every internal
// user; AdminIDs grants workspace-scoped admin rights equivalent to a global
// ADMIN but restricted to this workspace.
type Workspace struct {
	ID             string       `json:"id" yaml:"id"`
	Name           string       `json:"name" yaml:"name"`
	Icon           string       `json:"icon,omitempty" yaml:"icon,omitempty"`
	Columns        []ColumnSpec `json:"columns" yaml:"columns"`
	ActiveGroupIDs []string     `json:"active_group_ids,omitempty" yaml:"activeGroups,omitempty"`
	AdminIDs       []string     `json:"admin_ids,omitempty" yaml:"admins,omitempty"`
}

// Column returns the column definition for a field, if present
func (w *Workspace) Column(field string) (ColumnSpec, bool) {
	for _, c := range w.Columns {
		if c.Field == field {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// IsAdmin reports whether the user ID is in the workspace admin list
func (w *Workspace) IsAdmin(userID string) bool {
	for _, id := range w.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ActiveFor reports whether a group participates in this workspace. An empty
// filter means every group participates.
func (w *Workspace) ActiveFor(groupID string) bool {
	if len(w.ActiveGroupIDs) == 0 {
		return true
	}
	for _, id := range w.ActiveGroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}
