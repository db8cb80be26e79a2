package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/omnigrid/omnigrid/pkg/audit"
	"github.com/omnigrid/omnigrid/pkg/directory"
	"github.com/omnigrid/omnigrid/pkg/mutation"
	"github.com/omnigrid/omnigrid/pkg/observability"
	"github.com/omnigrid/omnigrid/pkg/workspace"
)

// App bundles the stores every command operates on
type App struct {
	Dir        *directory.Directory
	Workspaces *workspace.Registry
	Engine     *mutation.Engine
	AuditLog   *audit.Store
	Logger     *observability.Logger
	Metrics    *observability.Metrics

	// Out receives command output; defaults to stdout
	Out io.Writer
}

func (a *App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

// actor resolves the --as flag into a directory user
func (a *App) actor(userID string) (directory.User, error) {
	if userID == "" {
		return directory.User{}, fmt.Errorf("--as is required: every command acts as an explicit user")
	}
	u, ok := a.Dir.GetUser(userID)
	if !ok {
		return directory.User{}, fmt.Errorf("unknown user: %s", userID)
	}
	return u, nil
}

// workspace resolves the --ws flag
func (a *App) workspace(wsID string) (*workspace.Workspace, error) {
	if wsID == "" {
		return nil, fmt.Errorf("--ws is required")
	}
	ws, ok := a.Workspaces.Get(wsID)
	if !ok {
		return nil, fmt.Errorf("unknown workspace: %s", wsID)
	}
	return ws, nil
}
