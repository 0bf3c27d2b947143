package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/assetbake/internal/ctxlog"
	"github.com/vk/assetbake/internal/executor"
	"github.com/vk/assetbake/internal/graph"
	"github.com/vk/assetbake/internal/scan"
)

// Run executes the main application logic: scan, build, execute, install.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx)
		defer a.closeHealthcheckServer(ctx)
	}

	assets, err := scan.Scan(ctx, a.manifest.AssetRoot)
	if err != nil {
		return fmt.Errorf("failed to scan asset root: %w", err)
	}
	a.logger.Info("Assets discovered.", "count", len(assets))

	g, err := graph.Build(ctx, assets)
	if err != nil {
		return fmt.Errorf("failed to build task graph: %w", err)
	}
	a.logger.Debug("Task graph built.", "task_count", len(g.Tasks))

	if a.config.DryRun {
		a.printGraph(g)
		return nil
	}

	if len(g.Tasks) == 0 {
		a.logger.Warn("No tasks in graph, nothing to bake.")
		return nil
	}

	workers := a.manifest.Workers
	if a.config.Workers > 0 {
		workers = a.config.Workers
	}

	a.logger.Info("🚀 Starting bake...", "tasks", len(g.Tasks), "workers", workers)
	exec := executor.New(g, a.manifest, workers)
	if err := exec.Run(ctx); err != nil {
		return fmt.Errorf("bake failed: %w", err)
	}
	a.logger.Info("🏁 Bake finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}

// printGraph writes one line per task: kind, stage, input, outputs, and the
// overlay chain in precedence order.
func (a *App) printGraph(g *graph.Graph) {
	for _, t := range g.Tasks {
		line := t.Kind.String()
		if t.Stage != "" {
			line += "[" + string(t.Stage) + "]"
		}
		line += " " + t.Input + " -> " + strings.Join(t.Outputs, ", ")
		if len(t.Overlays) > 0 {
			line += " (overlays: " + strings.Join(t.Overlays, ", ") + ")"
		}
		fmt.Fprintln(a.outW, line)
	}
	fmt.Fprintf(a.outW, "%d task(s)\n", len(g.Tasks))
}
