package grid

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/omnigrid/omnigrid/pkg/directory"
)

// ParseUserMatrix turns a pasted personnel sheet into directory users. The
// first line is a header; recognized headings are id, name, role, group, and
// manager (with common variants). The parsed roster is meant for
// Directory.ReplaceUsers, which does the duplicate and cycle validation.
func ParseUserMatrix(matrix [][]string) ([]directory.User, error) {
	if len(matrix) == 0 {
		return nil, fmt.Errorf("personnel sheet is empty")
	}

	cols := make(map[string]int)
	for i, head := range matrix[0] {
		switch strings.ToLower(strings.TrimSpace(head)) {
		case "id", "userid", "user id":
			cols["id"] = i
		case "name", "fullname", "full name":
			cols["name"] = i
		case "role", "systemrole", "system role":
			cols["role"] = i
		case "group", "groupid", "group id":
			cols["group"] = i
		case "manager", "managerid", "manager id":
			cols["manager"] = i
		}
	}
	for _, required := range []string{"id", "name", "role"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("personnel sheet is missing a %s column", required)
		}
	}

	cell := func(line []string, key string) string {
		i, ok := cols[key]
		if !ok || i >= len(line) {
			return ""
		}
		return strings.TrimSpace(line[i])
	}

	var users []directory.User
	for n, line := range matrix[1:] {
		if blankLine(line) {
			continue
		}
		role := directory.SystemRole(strings.ToUpper(cell(line, "role")))
		if !role.Valid() {
			return nil, fmt.Errorf("line %d: invalid role %q", n+2, cell(line, "role"))
		}
		users = append(users, directory.User{
			ID:         cell(line, "id"),
			Name:       cell(line, "name"),
			SystemRole: role,
			GroupID:    cell(line, "group"),
			ManagerID:  cell(line, "manager"),
		})
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("personnel sheet has no user lines")
	}
	return users, nil
}

// ImportUserWorkbook reads a personnel roster from the first sheet of an
// xlsx workbook, in the same shape ParseUserMatrix accepts.
func ImportUserWorkbook(r io.Reader) ([]directory.User, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return ParseUserMatrix(cells)
}
