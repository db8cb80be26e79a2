package table

import (
	"strconv"
	"time"

	"github.com/omnigrid/omnigrid/pkg/workspace"
)

// Status represents where a row sits in its approval lifecycle
type Status string

const (
	StatusDraft    Status = "Draft"
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Valid reports whether the status is one of the known lifecycle states
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Statuses lists every lifecycle state in flow order
func Statuses() []Status {
	return []Status{StatusDraft, StatusPending, StatusApproved, StatusRejected}
}

// Meta field keys present on every row regardless of workspace schema
const (
	MetaID        = "id"
	MetaUpdatedAt = "updatedAt"
	MetaOwnerID   = "ownerId"
	MetaVersion   = "version"
	MetaStatus    = "status"
)

// Row is one record of a workspace. Version starts at 1 and increments by
// exactly one per accepted mutation batch that changed at least one field;
// UpdatedAt refreshes only on an actual accepted change.
type Row struct {
	ID          string           `json:"id"`
	WorkspaceID string           `json:"workspace_id"`
	Status      Status           `json:"status"`
	OwnerID     string           `json:"owner_id"`
	Version     int              `json:"version"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Fields      map[string]Value `json:"fields"`
}

// NewRow creates a DRAFT row owned by ownerID with the per-type zero values
// the grid seeds on creation: 0 for numbers, today for dates, empty text
// otherwise.
func NewRow(id, workspaceID, ownerID string, now time.Time, columns []workspace.ColumnSpec) *Row {
	fields := make(map[string]Value, len(columns))
	for _, col := range columns {
		switch col.Type {
		case workspace.FieldNumber:
			fields[col.Field] = Number(0)
		case workspace.FieldDate:
			fields[col.Field] = Date(now.Format("2006-01-02"))
		default:
			fields[col.Field] = Coerce(col.Type, "")
		}
	}
	return &Row{
		ID:          id,
		WorkspaceID: workspaceID,
		Status:      StatusDraft,
		OwnerID:     ownerID,
		Version:     1,
		UpdatedAt:   now,
		Fields:      fields,
	}
}

// FieldString returns the canonical string form of any field, meta fields
// included. Unknown fields stringify to "".
func (r *Row) FieldString(field string) string {
	switch field {
	case MetaID:
		return r.ID
	case MetaStatus:
		return string(r.Status)
	case MetaOwnerID:
		return r.OwnerID
	case MetaVersion:
		return strconv.Itoa(r.Version)
	case MetaUpdatedAt:
		return r.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return r.Fields[field].String()
}

// Clone deep-copies the row
func (r *Row) Clone() *Row {
	out := *r
	out.Fields = make(map[string]Value, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return &out
}
