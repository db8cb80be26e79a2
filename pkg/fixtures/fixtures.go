// Package fixtures loads seed data: role groups, a user roster, workspace
// schemas, and starter rows. Seeds come from a YAML file or from the
// built-in default set used by the CLI and tests.
package fixtures

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/omnigrid/omnigrid/pkg/directory"
	"github.com/omnigrid/omnigrid/pkg/mutation"
	"github.com/omnigrid/omnigrid/pkg/table"
	"github.com/omnigrid/omnigrid/pkg/workspace"
)

// RowSeed is the YAML shape of one starter row. Field values are raw
// strings; they are coerced against the workspace schema on apply.
type RowSeed struct {
	ID        string            `yaml:"id"`
	Workspace string            `yaml:"workspace"`
	Owner     string            `yaml:"owner"`
	Status    string            `yaml:"status"`
	UpdatedAt string            `yaml:"updatedAt,omitempty"`
	Fields    map[string]string `yaml:"fields"`
}

// Seed is a complete bootstrap data set
type Seed struct {
	Groups     []directory.RoleGroup  `yaml:"groups"`
	Users      []directory.User       `yaml:"users"`
	Workspaces []*workspace.Workspace `yaml:"workspaces"`
	Rows       []RowSeed              `yaml:"rows"`
}

// Load reads a seed from a YAML file
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

// Apply populates the stores from the seed. The user roster and every
// workspace are validated before anything lands; row seeds are coerced
// against their workspace schema.
func (s *Seed) Apply(dir *directory.Directory, reg *workspace.Registry, engine *mutation.Engine) error {
	for _, g := range s.Groups {
		if err := dir.AddGroup(g); err != nil {
			return err
		}
	}
	if len(s.Users) > 0 {
		if err := dir.ReplaceUsers(s.Users); err != nil {
			return err
		}
	}
	for _, ws := range s.Workspaces {
		if err := reg.Create(ws); err != nil {
			return err
		}
	}

	rows := make([]*table.Row, 0, len(s.Rows))
	for _, rs := range s.Rows {
		row, err := s.buildRow(rs)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 {
		if err := engine.InsertRows(rows, "seed"); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seed) buildRow(rs RowSeed) (*table.Row, error) {
	var ws *workspace.Workspace
	for _, candidate := range s.Workspaces {
		if candidate.ID == rs.Workspace {
			ws = candidate
			break
		}
	}
	if ws == nil {
		return nil, fmt.Errorf("row %s references unknown workspace %s", rs.ID, rs.Workspace)
	}

	status := table.Status(rs.Status)
	if rs.Status == "" {
		status = table.StatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("row %s has invalid status %q", rs.ID, rs.Status)
	}

	updatedAt := time.Now().UTC()
	if rs.UpdatedAt != "" {
		parsed, err := time.Parse(time.RFC3339, rs.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("row %s has invalid updatedAt: %w", rs.ID, err)
		}
		updatedAt = parsed
	}

	row := table.NewRow(rs.ID, ws.ID, rs.Owner, updatedAt, ws.Columns)
	row.Status = status
	for field, raw := range rs.Fields {
		col, ok := ws.Column(field)
		if !ok {
			return nil, fmt.Errorf("row %s sets unknown field %s", rs.ID, field)
		}
		row.Fields[field] = table.Coerce(col.Type, raw)
	}
	return row, nil
}
