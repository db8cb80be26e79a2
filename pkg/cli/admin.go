package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/omnigrid/omnigrid/pkg/access"
	"github.com/omnigrid/omnigrid/pkg/audit"
	"github.com/omnigrid/omnigrid/pkg/directory"
	"github.com/omnigrid/omnigrid/pkg/grid"
)

func (a *App) newUsersCommand() *Command {
	cmd := &Command{
		Name:        "users",
		Description: "List the directory or replace it from a roster file",
		Flags:       flag.NewFlagSet("users", flag.ExitOnError),
	}

	asID := cmd.Flags.String("as", "", "Acting user ID")
	importFile := cmd.Flags.String("import", "", "Replace the roster from an xlsx or TSV file")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		actor, err := a.actor(*asID)
		if err != nil {
			return err
		}

		if *importFile != "" {
			return a.importRoster(actor, *importFile)
		}

		w := tabwriter.NewWriter(a.out(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tROLE\tGROUP\tMANAGER")
		for _, u := range a.Dir.ListUsers() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.SystemRole, u.GroupID, u.ManagerID)
		}
		return w.Flush()
	}
	return cmd
}

func (a *App) importRoster(actor directory.User, path string) error {
	if actor.SystemRole != directory.RoleAdmin {
		return fmt.Errorf("only an ADMIN may replace the roster")
	}

	var users []directory.User
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		users, err = grid.ImportUserWorkbook(f)
		if err != nil {
			return err
		}
	} else {
		text, err := readInput(path)
		if err != nil {
			return err
		}
		var perr error
		users, perr = grid.ParseUserMatrix(grid.ParseClipboard(text))
		if perr != nil {
			return perr
		}
	}

	if err := a.Dir.ReplaceUsers(users); err != nil {
		return err
	}
	if a.Metrics != nil {
		a.Metrics.UsersTotal.Set(float64(len(users)))
	}
	if a.Logger != nil {
		a.Logger.WithActor(actor.ID, actor.Name).Infof("replaced roster with %d users", len(users))
	}
	fmt.Fprintf(a.out(), "replaced roster with %d users\n", len(users))
	return nil
}

func (a *App) newGroupsCommand() *Command {
	cmd := &Command{
		Name:        "groups",
		Description: "List role groups",
		Flags:       flag.NewFlagSet("groups", flag.ExitOnError),
	}

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}

		w := tabwriter.NewWriter(a.out(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOLOR\tDESCRIPTION")
		for _, g := range a.Dir.ListGroups() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", g.ID, g.Name, g.DisplayColor, g.Description)
		}
		return w.Flush()
	}
	return cmd
}

func (a *App) newPermsCommand() *Command {
	cmd := &Command{
		Name:        "perms",
		Description: "Show a workspace permission matrix or cycle one entry",
		Flags:       flag.NewFlagSet("perms", flag.ExitOnError),
	}

	asID := cmd.Flags.String("as", "", "Acting user ID")
	wsID := cmd.Flags.String("ws", "", "Workspace ID")
	field := cmd.Flags.String("field", "", "Column to change")
	group := cmd.Flags.String("group", "", "Group to change")
	cycle := cmd.Flags.Bool("cycle", false, "Advance the entry NONE -> READ -> WRITE -> NONE")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		actor, err := a.actor(*asID)
		if err != nil {
			return err
		}
		ws, err := a.workspace(*wsID)
		if err != nil {
			return err
		}

		if *cycle {
			if !access.IsWorkspaceAdmin(actor, ws) {
				return fmt.Errorf("user %s does not administer workspace %s", actor.ID, ws.ID)
			}
			if *field == "" || *group == "" {
				return fmt.Errorf("--field and --group are required with --cycle")
			}
			level, err := a.Workspaces.CyclePermission(ws.ID, *field, *group)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out(), "%s/%s for %s is now %s\n", ws.ID, *field, *group, level)
			return nil
		}

		groups := a.Dir.ListGroups()
		w := tabwriter.NewWriter(a.out(), 2, 4, 2, ' ', 0)
		header := []string{"FIELD"}
		for _, g := range groups {
			header = append(header, g.ID)
		}
		fmt.Fprintln(w, strings.Join(header, "\t"))
		for _, col := range ws.Columns {
			cells := []string{col.Field}
			for _, g := range groups {
				cells = append(cells, string(col.Permission(g.ID)))
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}
		return w.Flush()
	}
	return cmd
}

func (a *App) newAuditCommand() *Command {
	cmd := &Command{
		Name:        "audit",
		Description: "Search, summarize, or export the audit log",
		Flags:       flag.NewFlagSet("audit", flag.ExitOnError),
	}

	rowID := cmd.Flags.String("row", "", "Filter by row ID")
	wsID := cmd.Flags.String("ws", "", "Filter by workspace ID")
	operator := cmd.Flags.String("operator", "", "Filter by operator name")
	field := cmd.Flags.String("field", "", "Filter by field")
	limit := cmd.Flags.Int("limit", 50, "Maximum entries to list")
	stats := cmd.Flags.Bool("stats", false, "Print summary statistics instead of entries")
	format := cmd.Flags.String("export", "", "Export matching entries (json, csv, ndjson)")
	out := cmd.Flags.String("out", "", "Export output file, defaults to stdout")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}

		filter := audit.Filter{
			RowID:        *rowID,
			WorkspaceID:  *wsID,
			OperatorName: *operator,
			Field:        *field,
		}

		if *stats {
			s := a.AuditLog.GetStats()
			fmt.Fprintf(a.out(), "entries: %d\n", s.TotalEntries)
			for ws, n := range s.ByWorkspace {
				fmt.Fprintf(a.out(), "  workspace %s: %d\n", ws, n)
			}
			for op, n := range s.ByOperator {
				fmt.Fprintf(a.out(), "  operator %s: %d\n", op, n)
			}
			return nil
		}

		if *format != "" {
			data, err := a.AuditLog.Export(filter, audit.ExportFormat(*format))
			if err != nil {
				return err
			}
			if a.Metrics != nil {
				a.Metrics.ExportsTotal.WithLabelValues(*format).Inc()
			}
			if *out == "" {
				_, err = a.out().Write(data)
				return err
			}
			return os.WriteFile(*out, data, 0o644)
		}

		filter.Limit = *limit
		w := tabwriter.NewWriter(a.out(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tWORKSPACE\tROW\tOPERATOR\tFIELD\tOLD\tNEW")
		for _, e := range a.AuditLog.Search(filter) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"), e.WorkspaceID, e.RowID,
				e.OperatorName, e.Field, e.OldValue, e.NewValue)
		}
		return w.Flush()
	}
	return cmd
}
