// Package workspace models the configurable business processes of the grid:
// each workspace carries a dynamic schema of typed columns with a per-group
// permission map, an optional group visibility filter, and an optional list
// of workspace-scoped admins.
package workspace
