package directory

import "sort"

// Subordinates returns the IDs of every user whose reporting chain eventually
// reaches leaderID. The closure is computed over a children adjacency map with
// an explicit visited set, so a cyclic manager graph terminates instead of
// recursing forever. Results are cached until the directory changes.
func (d *Directory) Subordinates(leaderID string) map[string]struct{} {
	if set, ok := d.subCache.Get(leaderID); ok {
		return set
	}

	d.mu.RLock()
	children := childrenIndex(d.users)
	d.mu.RUnlock()

	set := collectSubordinates(leaderID, children)
	d.subCache.Add(leaderID, set)
	return set
}

// IsSubordinate reports whether userID reports, directly or transitively, to
// leaderID
func (d *Directory) IsSubordinate(leaderID, userID string) bool {
	_, ok := d.Subordinates(leaderID)[userID]
	return ok
}

// DetectManagementCycle returns one cyclic reporting chain if the current
// roster contains any, or nil. Imports use it to reject cyclic rosters with
// an explicit error rather than degrading traversal silently.
func (d *Directory) DetectManagementCycle() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return detectManagementCycle(d.users)
}

// childrenIndex builds a manager -> direct reports adjacency map
func childrenIndex(users map[string]User) map[string][]string {
	children := make(map[string][]string)
	for _, u := range users {
		if u.ManagerID == "" {
			continue
		}
		children[u.ManagerID] = append(children[u.ManagerID], u.ID)
	}
	return children
}

// collectSubordinates walks the adjacency map depth-first from leaderID
func collectSubordinates(leaderID string, children map[string][]string) map[string]struct{} {
	result := make(map[string]struct{})
	visited := map[string]struct{}{leaderID: {}}

	stack := append([]string(nil), children[leaderID]...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		result[id] = struct{}{}

		stack = append(stack, children[id]...)
	}
	return result
}

// detectManagementCycle walks every reporting chain upward looking for a
// repeated user. Returns the cycle path (manager order) or nil.
func detectManagementCycle(users map[string]User) []string {
	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	cleared := make(map[string]bool, len(users))
	for _, start := range ids {
		if cleared[start] {
			continue
		}

		onPath := make(map[string]int)
		path := []string{}
		id := start
		for {
			if pos, ok := onPath[id]; ok {
				return path[pos:]
			}
			onPath[id] = len(path)
			path = append(path, id)

			u, exists := users[id]
			if !exists || u.ManagerID == "" || cleared[u.ManagerID] {
				break
			}
			id = u.ManagerID
		}
		for _, visited := range path {
			cleared[visited] = true
		}
	}
	return nil
}
