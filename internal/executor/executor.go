// Package executor runs a built task graph: a pool of workers invokes the
// external converters (with content-stamp skipping for unchanged inputs),
// and a final aggregation step copies every declared output into the
// install tree.
//
// Tasks never share output paths (enforced at graph-build time), so workers
// need no coordination beyond the shared task channel and fail-fast cancel.
package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/assetbake/internal/ctxlog"
	"github.com/vk/assetbake/internal/graph"
	"github.com/vk/assetbake/internal/manifest"
)

// Executor orchestrates one end-to-end run of a task graph.
type Executor struct {
	graph   *graph.Graph
	cfg     *manifest.Config
	workers int
}

// New creates an executor for the given graph. workers must be positive.
func New(g *graph.Graph, cfg *manifest.Config, workers int) *Executor {
	return &Executor{graph: g, cfg: cfg, workers: workers}
}

// Run executes every task with bounded parallelism, failing fast on the
// first error, then installs all outputs. Nothing is installed unless every
// task succeeded.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Executor starting run.", "task_count", len(e.graph.Tasks), "workers", e.workers)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	taskChan := make(chan *graph.Task)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go e.worker(runCtx, i, taskChan, &wg, fail)
	}

feed:
	for _, t := range e.graph.Tasks {
		select {
		case taskChan <- t:
		case <-runCtx.Done():
			break feed
		}
	}
	close(taskChan)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return e.install(ctx)
}

// worker is the processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, workerID int, tasks <-chan *graph.Task, wg *sync.WaitGroup, fail func(error)) {
	defer wg.Done()
	logger := ctxlog.FromContext(ctx).With("workerID", workerID)
	logger.Debug("Worker started.")

	for t := range tasks {
		if ctx.Err() != nil {
			// Drain after a cancel; nothing else must start.
			continue
		}
		if err := e.runTask(ctx, t); err != nil {
			logger.Error("Task execution failed.", "input", t.Input, "error", err)
			fail(fmt.Errorf("baking %s: %w", t.Input, err))
		}
	}
	logger.Debug("Worker finished.")
}
