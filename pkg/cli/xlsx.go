package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/omnigrid/omnigrid/pkg/grid"
)

func (a *App) newExportCommand() *Command {
	cmd := &Command{
		Name:        "export",
		Description: "Export visible rows to an xlsx workbook",
		Flags:       flag.NewFlagSet("export", flag.ExitOnError),
	}

	asID := cmd.Flags.String("as", "", "Acting user ID")
	wsID := cmd.Flags.String("ws", "", "Workspace ID")
	out := cmd.Flags.String("out", "export.xlsx", "Output file")

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

		rows := a.Engine.VisibleRows(actor, ws, "")
		f, err := grid.ExportWorkbook(ws, rows)
		if err != nil {
			return err
		}
		if err := f.SaveAs(*out); err != nil {
			return fmt.Errorf("failed to save workbook: %w", err)
		}

		if a.Metrics != nil {
			a.Metrics.ExportsTotal.WithLabelValues("xlsx").Inc()
		}
		fmt.Fprintf(a.out(), "exported %d rows to %s\n", len(rows), *out)
		return nil
	}
	return cmd
}

func (a *App) newImportCommand() *Command {
	cmd := &Command{
		Name:        "import",
		Description: "Import an xlsx workbook as draft rows",
		Flags:       flag.NewFlagSet("import", flag.ExitOnError),
	}

	asID := cmd.Flags.String("as", "", "Acting user ID")
	wsID := cmd.Flags.String("ws", "", "Workspace ID")
	file := cmd.Flags.String("file", "", "Workbook to import")

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
		if *file == "" {
			return fmt.Errorf("--file is required")
		}

		f, err := os.Open(*file)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", *file, err)
		}
		defer f.Close()

		rows, err := grid.ImportWorkbook(f, ws, actor, time.Now().UTC())
		if err != nil {
			if a.Metrics != nil {
				a.Metrics.ImportsTotal.WithLabelValues(ws.ID, "failed").Inc()
			}
			return err
		}
		if err := a.Engine.InsertRows(rows, "import"); err != nil {
			if a.Metrics != nil {
				a.Metrics.ImportsTotal.WithLabelValues(ws.ID, "failed").Inc()
			}
			return err
		}

		if a.Metrics != nil {
			a.Metrics.ImportsTotal.WithLabelValues(ws.ID, "ok").Inc()
		}
		fmt.Fprintf(a.out(), "imported %d draft rows into %s\n", len(rows), ws.ID)
		return nil
	}
	return cmd
}
