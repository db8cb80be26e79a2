package workspace

import (
	"fmt"
	"sort"
	"sync"

	"github.com/omnigrid/omnigrid/pkg/directory"
)

// ReservedFields are row meta fields a schema may never redefine
var ReservedFields = map[string]struct{}{
	"id":        {},
	"updatedAt": {},
	"ownerId":   {},
	"version":   {},
	"status":    {},
}

// Registry is the in-memory workspace store. The schema designer and policy
// console mutate workspaces exclusively through its methods.
type Registry struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{workspaces: make(map[string]*Workspace)}
}

// Validate checks a workspace definition: valid column types, unique field
// keys, and no collision with reserved meta fields.
func Validate(w *Workspace) error {
	if w.ID == "" {
		return fmt.Errorf("workspace ID is required")
	}
	if w.Name == "" {
		return fmt.Errorf("workspace name is required")
	}

	seen := make(map[string]struct{}, len(w.Columns))
	for _, col := range w.Columns {
		if col.Field == "" {
			return fmt.Errorf("workspace %s: column field key is required", w.ID)
		}
		if !col.Type.Valid() {
			return fmt.Errorf("workspace %s: column %s has invalid type %q", w.ID, col.Field, col.Type)
		}
		if _, reserved := ReservedFields[col.Field]; reserved {
			return fmt.Errorf("workspace %s: column %s collides with a reserved meta field", w.ID, col.Field)
		}
		if _, dup := seen[col.Field]; dup {
			return fmt.Errorf("workspace %s: duplicate column field %s", w.ID, col.Field)
		}
		seen[col.Field] = struct{}{}
	}
	return nil
}

// Create adds a workspace after validation
func (r *Registry) Create(w *Workspace) error {
	if err := Validate(w); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workspaces[w.ID]; exists {
		return fmt.Errorf("workspace already exists: %s", w.ID)
	}

	r.workspaces[w.ID] = cloneWorkspace(w)
	return nil
}

// Update replaces an existing workspace definition after validation
func (r *Registry) Update(w *Workspace) error {
	if err := Validate(w); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workspaces[w.ID]; !exists {
		return fmt.Errorf("workspace not found: %s", w.ID)
	}

	r.workspaces[w.ID] = cloneWorkspace(w)
	return nil
}

// Delete removes a workspace
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workspaces[id]; !exists {
		return fmt.Errorf("workspace not found: %s", id)
	}

	delete(r.workspaces, id)
	return nil
}

// Get retrieves a copy of a workspace by ID
func (r *Registry) Get(id string) (*Workspace, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workspaces[id]
	if !ok {
		return nil, false
	}
	return cloneWorkspace(w), true
}

// List returns all workspaces sorted by ID
func (r *Registry) List() []*Workspace {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Workspace, 0, len(r.workspaces))
	for _, w := range r.workspaces {
		out = append(out, cloneWorkspace(w))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// VisibleTo returns the workspaces the user may see in the sidebar: all of
// them for a global ADMIN, otherwise those whose active-group filter is empty
// or contains the user's group.
func (r *Registry) VisibleTo(u directory.User) []*Workspace {
	all := r.List()
	if u.SystemRole == directory.RoleAdmin {
		return all
	}

	visible := make([]*Workspace, 0, len(all))
	for _, w := range all {
		if w.ActiveFor(u.GroupID) {
			visible = append(visible, w)
		}
	}
	return visible
}

// SetPermission sets the access level of one group on one column
func (r *Registry) SetPermission(wsID, field, groupID string, level AccessLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workspaces[wsID]
	if !ok {
		return fmt.Errorf("workspace not found: %s", wsID)
	}

	for i := range w.Columns {
		if w.Columns[i].Field != field {
			continue
		}
		if w.Columns[i].GroupPermissions == nil {
			w.Columns[i].GroupPermissions = make(map[string]AccessLevel)
		}
		w.Columns[i].GroupPermissions[groupID] = level
		return nil
	}
	return fmt.Errorf("workspace %s: column not found: %s", wsID, field)
}

// CyclePermission advances a group's access on a column one step through the
// policy console's NONE -> READ -> WRITE -> NONE order and returns the new
// level.
func (r *Registry) CyclePermission(wsID, field, groupID string) (AccessLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workspaces[wsID]
	if !ok {
		return AccessNone, fmt.Errorf("workspace not found: %s", wsID)
	}

	for i := range w.Columns {
		if w.Columns[i].Field != field {
			continue
		}
		next := w.Columns[i].Permission(groupID).Next()
		if w.Columns[i].GroupPermissions == nil {
			w.Columns[i].GroupPermissions = make(map[string]AccessLevel)
		}
		w.Columns[i].GroupPermissions[groupID] = next
		return next, nil
	}
	return AccessNone, fmt.Errorf("workspace %s: column not found: %s", wsID, field)
}

// SetActiveGroups replaces the workspace's group visibility filter
func (r *Registry) SetActiveGroups(wsID string, groupIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workspaces[wsID]
	if !ok {
		return fmt.Errorf("workspace not found: %s", wsID)
	}
	w.ActiveGroupIDs = append([]string(nil), groupIDs...)
	return nil
}

// AddAdmin grants workspace-scoped admin rights to a user
func (r *Registry) AddAdmin(wsID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workspaces[wsID]
	if !ok {
		return fmt.Errorf("workspace not found: %s", wsID)
	}
	if w.IsAdmin(userID) {
		return nil
	}
	w.AdminIDs = append(w.AdminIDs, userID)
	return nil
}

// RemoveAdmin revokes workspace-scoped admin rights from a user
func (r *Registry) RemoveAdmin(wsID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workspaces[wsID]
	if !ok {
		return fmt.Errorf("workspace not found: %s", wsID)
	}

	kept := w.AdminIDs[:0]
	for _, id := range w.AdminIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	w.AdminIDs = kept
	return nil
}

// cloneWorkspace deep-copies a workspace so callers never alias registry state
func cloneWorkspace(w *Workspace) *Workspace {
	out := &Workspace{
		ID:             w.ID,
		Name:           w.Name,
		Icon:           w.Icon,
		Columns:        make([]ColumnSpec, len(w.Columns)),
		ActiveGroupIDs: append([]string(nil), w.ActiveGroupIDs...),
		AdminIDs:       append([]string(nil), w.AdminIDs...),
	}
	for i, col := range w.Columns {
		copied := col
		copied.Options = append([]string(nil), col.Options...)
		if col.GroupPermissions != nil {
			copied.GroupPermissions = make(map[string]AccessLevel, len(col.GroupPermissions))
			for g, l := range col.GroupPermissions {
				copied.GroupPermissions[g] = l
			}
		}
		out.Columns[i] = copied
	}
	return out
}
