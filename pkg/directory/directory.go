package directory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// subordinateCacheSize bounds the number of cached closure results; one
	// entry per leader is plenty for modest workspace populations
	subordinateCacheSize = 256

	// subordinateCacheTTL expires closure results even without a directory
	// change, so a forgotten invalidation can never go stale forever
	subordinateCacheTTL = 5 * time.Minute
)

// Directory is the in-memory user and group store. All mutation goes through
// its methods; readers get copies, never references into internal state.
type Directory struct {
	mu       sync.RWMutex
	users    map[string]User
	groups   map[string]RoleGroup
	revision uint64

	subCache *lru.LRU[string, map[string]struct{}]
}

// New creates an empty directory
func New() *Directory {
	return &Directory{
		users:    make(map[string]User),
		groups:   make(map[string]RoleGroup),
		subCache: lru.NewLRU[string, map[string]struct{}](subordinateCacheSize, nil, subordinateCacheTTL),
	}
}

// Revision returns a counter that increments on every mutation. Callers can
// use it to detect directory changes between snapshots.
func (d *Directory) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

// AddUser inserts a user. The ID must be unique and the role valid.
func (d *Directory) AddUser(u User) error {
	if u.ID == "" {
		return fmt.Errorf("user ID is required")
	}
	if !u.SystemRole.Valid() {
		return fmt.Errorf("invalid system role %q for user %s", u.SystemRole, u.ID)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[u.ID]; exists {
		return fmt.Errorf("user already exists: %s", u.ID)
	}

	d.users[u.ID] = u
	d.bump()
	return nil
}

// UpdateUser replaces an existing user record
func (d *Directory) UpdateUser(u User) error {
	if !u.SystemRole.Valid() {
		return fmt.Errorf("invalid system role %q for user %s", u.SystemRole, u.ID)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[u.ID]; !exists {
		return fmt.Errorf("user not found: %s", u.ID)
	}

	d.users[u.ID] = u
	d.bump()
	return nil
}

// DeleteUser removes a user. Manager links pointing at the deleted user are
// left dangling on purpose; subordinate resolution treats them as absent.
func (d *Directory) DeleteUser(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[id]; !exists {
		return fmt.Errorf("user not found: %s", id)
	}

	delete(d.users, id)
	d.bump()
	return nil
}

// GetUser retrieves a user by ID
func (d *Directory) GetUser(id string) (User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	return u, ok
}

// ListUsers returns all users sorted by ID
func (d *Directory) ListUsers() []User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// ReplaceUsers swaps the entire roster in one step, as the policy console
// does for pasted or imported personnel sheets. The new roster is validated
// up front; on any error the current roster is kept untouched.
func (d *Directory) ReplaceUsers(users []User) error {
	next := make(map[string]User, len(users))
	for _, u := range users {
		if u.ID == "" {
			return fmt.Errorf("user ID is required")
		}
		if !u.SystemRole.Valid() {
			return fmt.Errorf("invalid system role %q for user %s", u.SystemRole, u.ID)
		}
		if _, dup := next[u.ID]; dup {
			return fmt.Errorf("duplicate user ID: %s", u.ID)
		}
		next[u.ID] = u
	}

	if cycle := detectManagementCycle(next); len(cycle) > 0 {
		return fmt.Errorf("cyclic management graph: %v", cycle)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.users = next
	d.bump()
	return nil
}

// AddGroup inserts a role group
func (d *Directory) AddGroup(g RoleGroup) error {
	if g.ID == "" {
		return fmt.Errorf("group ID is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.groups[g.ID]; exists {
		return fmt.Errorf("group already exists: %s", g.ID)
	}

	d.groups[g.ID] = g
	d.bump()
	return nil
}

// DeleteGroup removes a role group. Users keep their GroupID; permission
// lookups for a deleted group simply resolve to no access.
func (d *Directory) DeleteGroup(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.groups[id]; !exists {
		return fmt.Errorf("group not found: %s", id)
	}

	delete(d.groups, id)
	d.bump()
	return nil
}

// GetGroup retrieves a role group by ID
func (d *Directory) GetGroup(id string) (RoleGroup, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	g, ok := d.groups[id]
	return g, ok
}

// ListGroups returns all role groups sorted by ID
func (d *Directory) ListGroups() []RoleGroup {
	d.mu.RLock()
	defer d.mu.RUnlock()

	groups := make([]RoleGroup, 0, len(d.groups))
	for _, g := range d.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups
}

// bump increments the revision and drops cached subordinate closures.
// Callers must hold the write lock.
func (d *Directory) bump() {
	d.revision++
	d.subCache.Purge()
}
