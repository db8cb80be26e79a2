package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/omnigrid/omnigrid/pkg/access"
	"github.com/omnigrid/omnigrid/pkg/grid"
	"github.com/omnigrid/omnigrid/pkg/mutation"
	"github.com/omnigrid/omnigrid/pkg/workspace"
)

func (a *App) newRowsCommand() *Command {
	cmd := &Command{
		Name:        "rows",
		Description: "List the rows visible to a user",
		Flags:       flag.NewFlagSet("rows", flag.ExitOnError),
	}

	asID := cmd.Flags.String("as", "", "Acting user ID")
	wsID := cmd.Flags.String("ws", "", "Workspace ID")
	query := cmd.Flags.String("query", "", "Substring filter over field values")

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

		rows := a.Engine.VisibleRows(actor, ws, *query)

		w := tabwriter.NewWriter(a.out(), 2, 4, 2, ' ', 0)
		header := []string{"ID", "STATUS", "OWNER", "VER"}
		for _, col := range ws.Columns {
			header = append(header, strings.ToUpper(col.Label))
		}
		fmt.Fprintln(w, strings.Join(header, "\t"))

		for _, row := range rows {
			cells := []string{row.ID, string(row.Status), row.OwnerID, row.FieldString("version")}
			for _, col := range ws.Columns {
				if access.ColumnAccess(actor, row, col.Field, ws) == workspace.AccessNone {
					cells = append(cells, "***")
					continue
				}
				cells = append(cells, row.FieldString(col.Field))
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}
		return w.Flush()
	}
	return cmd
}

func (a *App) newNewCommand() *Command {
	cmd := &Command{
		Name:        "new",
		Description: "Create a draft row owned by a user",
		Flags:       flag.NewFlagSet("new", flag.ExitOnError),
	}

	asID := cmd.Flags.String("as", "", "Acting user ID")
	wsID := cmd.Flags.String("ws", "", "Workspace ID")

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

		row := a.Engine.NewRow(actor, ws)
		fmt.Fprintf(a.out(), "created draft row %s in %s\n", row.ID, ws.ID)
		return nil
	}
	return cmd
}

func (a *App) newSetCommand() *Command {
	cmd := &Command{
		Name:        "set",
		Description: "Write one cell as a single-update batch",
		Flags:       flag.NewFlagSet("set", flag.ExitOnError),
	}

	asID := cmd.Flags.String("as", "", "Acting user ID")
	wsID := cmd.Flags.String("ws", "", "Workspace ID")
	rowID := cmd.Flags.String("row", "", "Row ID")
	field := cmd.Flags.String("field", "", "Field key (status included)")
	value := cmd.Flags.String("value", "", "New value")

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
		if *rowID == "" || *field == "" {
			return fmt.Errorf("--row and --field are required")
		}

		res := a.Engine.BatchUpdate(actor, ws, []mutation.CellUpdate{
			{RowID: *rowID, Field: *field, Value: *value},
		})
		fmt.Fprintf(a.out(), "applied %d, skipped %d\n", res.Applied, res.Skipped)
		return nil
	}
	return cmd
}

func (a *App) newPasteCommand() *Command {
	cmd := &Command{
		Name:        "paste",
		Description: "Apply tab-separated text over a cell selection",
		Flags:       flag.NewFlagSet("paste", flag.ExitOnError),
	}

	asID := cmd.Flags.String("as", "", "Acting user ID")
	wsID := cmd.Flags.String("ws", "", "Workspace ID")
	file := cmd.Flags.String("file", "-", "TSV input file, - for stdin")
	startRow := cmd.Flags.Int("start-row", 0, "Selection start row (0-based, into the visible rows)")
	startCol := cmd.Flags.Int("start-col", 0, "Selection start column (0-based, status first)")
	endRow := cmd.Flags.Int("end-row", -1, "Selection end row, defaults to start")
	endCol := cmd.Flags.Int("end-col", -1, "Selection end column, defaults to start")

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

		text, err := readInput(*file)
		if err != nil {
			return err
		}
		matrix := grid.ParseClipboard(text)
		if len(matrix) == 0 {
			return fmt.Errorf("nothing to paste")
		}

		sel := grid.Selection{StartRow: *startRow, StartCol: *startCol, EndRow: *endRow, EndCol: *endCol}
		if sel.EndRow < 0 {
			sel.EndRow = sel.StartRow
		}
		if sel.EndCol < 0 {
			sel.EndCol = sel.StartCol
		}

		rows := a.Engine.VisibleRows(actor, ws, "")
		updates := grid.ExpandPaste(matrix, sel, rows, grid.GridColumns(ws))
		res := a.Engine.BatchUpdate(actor, ws, updates)
		fmt.Fprintf(a.out(), "pasted %d cells: applied %d, skipped %d\n", len(updates), res.Applied, res.Skipped)
		return nil
	}
	return cmd
}

func (a *App) newSubmitCommand() *Command {
	cmd := &Command{
		Name:        "submit",
		Description: "Submit a user's draft rows for review",
		Flags:       flag.NewFlagSet("submit", flag.ExitOnError),
	}

	asID := cmd.Flags.String("as", "", "Acting user ID")
	wsID := cmd.Flags.String("ws", "", "Workspace ID")

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

		submitted := a.Engine.SubmitDrafts(actor, ws)
		fmt.Fprintf(a.out(), "submitted %d draft rows\n", submitted)
		return nil
	}
	return cmd
}

func readInput(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
