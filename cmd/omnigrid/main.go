package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/omnigrid/omnigrid/pkg/audit"
	"github.com/omnigrid/omnigrid/pkg/cli"
	"github.com/omnigrid/omnigrid/pkg/config"
	"github.com/omnigrid/omnigrid/pkg/directory"
	"github.com/omnigrid/omnigrid/pkg/fixtures"
	"github.com/omnigrid/omnigrid/pkg/mutation"
	"github.com/omnigrid/omnigrid/pkg/observability"
	"github.com/omnigrid/omnigrid/pkg/workspace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, os.Stderr)

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	dir := directory.New()
	workspaces := workspace.NewRegistry()
	auditLog := audit.NewStore()

	opts := []mutation.Option{}
	if metrics != nil {
		opts = append(opts, mutation.WithMetrics(metrics))
	}
	engine := mutation.NewEngine(dir, auditLog, logger, opts...)

	seed := fixtures.Default()
	if cfg.FixturesPath != "" {
		seed, err = fixtures.Load(cfg.FixturesPath)
		if err != nil {
			return err
		}
	}
	if err := seed.Apply(dir, workspaces, engine); err != nil {
		return fmt.Errorf("failed to apply seed data: %w", err)
	}
	if metrics != nil {
		metrics.UsersTotal.Set(float64(len(seed.Users)))
	}

	app := &cli.App{
		Dir:        dir,
		Workspaces: workspaces,
		Engine:     engine,
		AuditLog:   auditLog,
		Logger:     logger,
		Metrics:    metrics,
	}

	return cli.NewRootCommand(app).Execute(os.Args[1:])
}
