package fixtures

import (
	"github.com/omnigrid/omnigrid/pkg/directory"
	"github.com/omnigrid/omnigrid/pkg/workspace"
)

// Default returns the built-in demo seed: an expense-approval workspace and
// a salary-adjustment workspace, four role groups, and a small reporting
// hierarchy exercising every visibility rule.
func Default() *Seed {
	return &Seed{
		Groups: []directory.RoleGroup{
			{ID: "G-GENERAL", Name: "General Staff", DisplayColor: "blue", Description: "Initiates business requests"},
			{ID: "G-MANAGER", Name: "Department Manager", DisplayColor: "emerald", Description: "Reviews and approves requests"},
			{ID: "G-AUDIT", Name: "Finance & HR", DisplayColor: "amber", Description: "Functional review"},
			{ID: "G-VP", Name: "Vice President", DisplayColor: "purple", Description: "Executive decisions"},
		},
		Users: []directory.User{
			{ID: "1", Name: "System Admin", SystemRole: directory.RoleAdmin, GroupID: "G-AUDIT"},
			{ID: "2", Name: "Wei Zhang", SystemRole: directory.RoleLeader, GroupID: "G-MANAGER"},
			{ID: "3", Name: "Fang Li", SystemRole: directory.RoleMember, GroupID: "G-GENERAL", ManagerID: "2"},
			{ID: "4", Name: "Chao Wang", SystemRole: directory.RoleMember, GroupID: "G-GENERAL", ManagerID: "2"},
			{ID: "5", Name: "Jing Chen", SystemRole: directory.RoleLeader, GroupID: "G-MANAGER", ManagerID: "1"},
			{ID: "6", Name: "Sarah Miller", SystemRole: directory.RoleMember, GroupID: "G-AUDIT"},
			{ID: "7", Name: "Mike Ross", SystemRole: directory.RoleMember, GroupID: "G-GENERAL", ManagerID: "5"},
			{ID: "8", Name: "Director Liu", SystemRole: directory.RoleLeader, GroupID: "G-VP"},
		},
		Workspaces: []*workspace.Workspace{
			{
				ID:   "WS-FINANCE",
				Name: "Expense Approval",
				Icon: "Calculator",
				Columns: []workspace.ColumnSpec{
					{
						Field: "title", Label: "Reason", Type: workspace.FieldText,
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-GENERAL": workspace.AccessWrite,
							"G-MANAGER": workspace.AccessRead,
							"G-AUDIT":   workspace.AccessRead,
							"G-VP":      workspace.AccessRead,
						},
					},
					{
						Field: "category", Label: "Category", Type: workspace.FieldSelect,
						Options: []string{"Travel", "Office", "Meals", "Benefits", "Hardware"},
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-GENERAL": workspace.AccessWrite,
							"G-MANAGER": workspace.AccessRead,
							"G-AUDIT":   workspace.AccessWrite,
							"G-VP":      workspace.AccessRead,
						},
					},
					{
						Field: "date", Label: "Expense Date", Type: workspace.FieldDate,
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-GENERAL": workspace.AccessWrite,
							"G-MANAGER": workspace.AccessRead,
							"G-AUDIT":   workspace.AccessRead,
							"G-VP":      workspace.AccessRead,
						},
					},
					{
						Field: "amount", Label: "Amount", Type: workspace.FieldNumber, IsSensitive: true,
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-GENERAL": workspace.AccessWrite,
							"G-MANAGER": workspace.AccessRead,
							"G-AUDIT":   workspace.AccessWrite,
							"G-VP":      workspace.AccessRead,
						},
					},
					{
						Field: "region", Label: "Region", Type: workspace.FieldSelect,
						Options: []string{"East", "North", "South", "Overseas"},
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-GENERAL": workspace.AccessWrite,
							"G-MANAGER": workspace.AccessRead,
							"G-AUDIT":   workspace.AccessRead,
							"G-VP":      workspace.AccessRead,
						},
					},
					{
						Field: "approvalNote", Label: "Review Note", Type: workspace.FieldText,
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-GENERAL": workspace.AccessRead,
							"G-MANAGER": workspace.AccessWrite,
							"G-AUDIT":   workspace.AccessWrite,
							"G-VP":      workspace.AccessWrite,
						},
					},
				},
			},
			{
				ID:             "WS-HR",
				Name:           "Salary Adjustment",
				Icon:           "Users",
				ActiveGroupIDs: []string{"G-MANAGER", "G-AUDIT", "G-VP"},
				Columns: []workspace.ColumnSpec{
					{
						Field: "employeeName", Label: "Employee", Type: workspace.FieldText,
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-MANAGER": workspace.AccessWrite,
							"G-AUDIT":   workspace.AccessRead,
							"G-VP":      workspace.AccessRead,
						},
					},
					{
						Field: "position", Label: "Grade", Type: workspace.FieldSelect,
						Options: []string{"P5", "P6", "P7", "P8", "M1", "M2"},
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-MANAGER": workspace.AccessWrite,
							"G-AUDIT":   workspace.AccessRead,
							"G-VP":      workspace.AccessRead,
						},
					},
					{
						Field: "effectiveDate", Label: "Effective Date", Type: workspace.FieldDate,
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-MANAGER": workspace.AccessWrite,
							"G-AUDIT":   workspace.AccessWrite,
							"G-VP":      workspace.AccessRead,
						},
					},
					{
						Field: "currentSalary", Label: "Current Salary", Type: workspace.FieldNumber, IsSensitive: true,
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-MANAGER": workspace.AccessRead,
							"G-AUDIT":   workspace.AccessRead,
							"G-VP":      workspace.AccessRead,
						},
					},
					{
						Field: "targetSalary", Label: "Target Salary", Type: workspace.FieldNumber, IsSensitive: true,
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-MANAGER": workspace.AccessWrite,
							"G-AUDIT":   workspace.AccessRead,
							"G-VP":      workspace.AccessRead,
						},
					},
					{
						Field: "reason", Label: "Justification", Type: workspace.FieldText,
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-MANAGER": workspace.AccessWrite,
							"G-AUDIT":   workspace.AccessRead,
							"G-VP":      workspace.AccessRead,
						},
					},
					{
						Field: "approvalNote", Label: "HRBP Note", Type: workspace.FieldText,
						GroupPermissions: map[string]workspace.AccessLevel{
							"G-MANAGER": workspace.AccessRead,
							"G-AUDIT":   workspace.AccessWrite,
							"G-VP":      workspace.AccessWrite,
						},
					},
				},
			},
		},
		Rows: []RowSeed{
			{
				ID: "R-1001", Workspace: "WS-FINANCE", Owner: "3", Status: "Pending",
				Fields: map[string]string{
					"title":    "Q1 marketing travel",
					"category": "Travel",
					"date":     "2026-03-15",
					"amount":   "15200",
					"region":   "East",
				},
			},
			{
				ID: "R-1002", Workspace: "WS-FINANCE", Owner: "4", Status: "Draft",
				Fields: map[string]string{
					"title":    "Team offsite catering",
					"category": "Meals",
					"date":     "2026-04-02",
					"amount":   "1250.5",
					"region":   "North",
				},
			},
			{
				ID: "R-1003", Workspace: "WS-FINANCE", Owner: "7", Status: "Approved",
				Fields: map[string]string{
					"title":    "Server renewal",
					"category": "Hardware",
					"date":     "2026-01-20",
					"amount":   "48000",
					"region":   "East",
				},
			},
			{
				ID: "R-2001", Workspace: "WS-HR", Owner: "5", Status: "Pending",
				Fields: map[string]string{
					"employeeName":  "Mike Ross",
					"position":      "P6",
					"effectiveDate": "2026-07-01",
					"currentSalary": "18000",
					"targetSalary":  "21000",
					"reason":        "Outstanding annual review",
				},
			},
		},
	}
}
