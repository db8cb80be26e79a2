package cli

import (
	"flag"
	"fmt"
	"sort"
)

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
	Flags       *flag.FlagSet
}

// NewRootCommand creates the root command over an app
func NewRootCommand(app *App) *Command {
	root := &Command{
		Name:        "omnigrid",
		Description: "Omnigrid - permissioned tabular data console",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("omnigrid", flag.ExitOnError),
	}

	root.Subcommands["rows"] = app.newRowsCommand()
	root.Subcommands["new"] = app.newNewCommand()
	root.Subcommands["set"] = app.newSetCommand()
	root.Subcommands["paste"] = app.newPasteCommand()
	root.Subcommands["submit"] = app.newSubmitCommand()
	root.Subcommands["import"] = app.newImportCommand()
	root.Subcommands["export"] = app.newExportCommand()
	root.Subcommands["users"] = app.newUsersCommand()
	root.Subcommands["groups"] = app.newGroupsCommand()
	root.Subcommands["perms"] = app.newPermsCommand()
	root.Subcommands["audit"] = app.newAuditCommand()
	root.Subcommands["serve-metrics"] = app.newServeMetricsCommand()

	return root
}

// Execute runs the command against the given arguments
func (c *Command) Execute(args []string) error {
	if len(args) == 0 {
		return c.usage()
	}

	if args[0] == "-h" || args[0] == "--help" {
		return c.usage()
	}

	if subcmd, ok := c.Subcommands[args[0]]; ok {
		return subcmd.Run(args[1:])
	}

	return fmt.Errorf("unknown command: %s", args[0])
}

// usage prints the command usage
func (c *Command) usage() error {
	fmt.Printf("Usage: %s <command> [args]\n\n", c.Name)
	fmt.Printf("Commands:\n")

	names := make([]string, 0, len(c.Subcommands))
	for name := range c.Subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-15s %s\n", name, c.Subcommands[name].Description)
	}
	return nil
}
