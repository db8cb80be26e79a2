package cli

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/fsnotify/fsnotify"

	"github.com/omnigrid/omnigrid/pkg/fixtures"
)

func (a *App) newServeMetricsCommand() *Command {
	cmd := &Command{
		Name:        "serve-metrics",
		Description: "Serve Prometheus metrics, optionally hot-reloading fixtures",
		Flags:       flag.NewFlagSet("serve-metrics", flag.ExitOnError),
	}

	addr := cmd.Flags.String("addr", "127.0.0.1:9090", "Listen address")
	watch := cmd.Flags.String("watch", "", "Fixtures file to reload on change")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		if a.Metrics == nil {
			return fmt.Errorf("metrics are not enabled")
		}

		if *watch != "" {
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}
			defer watcher.Close()
			if err := watcher.Add(*watch); err != nil {
				return fmt.Errorf("failed to watch %s: %w", *watch, err)
			}
			go a.watchFixtures(watcher, *watch)
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", a.Metrics.Handler())

		if a.Logger != nil {
			a.Logger.WithField("addr", *addr).Info("serving metrics")
		}
		return http.ListenAndServe(*addr, mux)
	}
	return cmd
}

// watchFixtures reloads the directory and workspace definitions whenever the
// fixtures file changes. Rows are never reloaded; a live grid keeps its data.
func (a *App) watchFixtures(watcher *fsnotify.Watcher, path string) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := a.reloadFixtures(path); err != nil {
				if a.Logger != nil {
					a.Logger.WithError(err).Warn("fixtures reload failed")
				}
				continue
			}
			if a.Logger != nil {
				a.Logger.WithField("path", path).Info("fixtures reloaded")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if a.Logger != nil {
				a.Logger.WithError(err).Warn("fixtures watcher error")
			}
		}
	}
}

func (a *App) reloadFixtures(path string) error {
	seed, err := fixtures.Load(path)
	if err != nil {
		return err
	}

	if len(seed.Users) > 0 {
		if err := a.Dir.ReplaceUsers(seed.Users); err != nil {
			return err
		}
		if a.Metrics != nil {
			a.Metrics.UsersTotal.Set(float64(len(seed.Users)))
		}
	}
	for _, g := range seed.Groups {
		if _, exists := a.Dir.GetGroup(g.ID); !exists {
			if err := a.Dir.AddGroup(g); err != nil {
				return err
			}
		}
	}
	for _, ws := range seed.Workspaces {
		if _, exists := a.Workspaces.Get(ws.ID); exists {
			if err := a.Workspaces.Update(ws); err != nil {
				return err
			}
			continue
		}
		if err := a.Workspaces.Create(ws); err != nil {
			return err
		}
	}
	return nil
}
