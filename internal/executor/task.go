package executor

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/assetbake/internal/classify"
	"github.com/vk/assetbake/internal/converter"
	"github.com/vk/assetbake/internal/ctxlog"
	"github.com/vk/assetbake/internal/graph"
)

// runTask executes one task unless its content stamp says it is up to date.
func (e *Executor) runTask(ctx context.Context, t *graph.Task) error {
	logger := ctxlog.FromContext(ctx)

	upToDate, err := e.upToDate(t)
	if err != nil {
		return err
	}
	if upToDate {
		logger.Debug("Task up to date, skipping.", "input", t.Input, "stage", t.Stage)
		return nil
	}
	logger.Debug("Running task.", "kind", t.Kind, "input", t.Input, "stage", t.Stage)

	for _, out := range t.Outputs {
		if err := os.MkdirAll(filepath.Dir(e.stagingPath(out)), 0o755); err != nil {
			return err
		}
	}
	if t.DepFile != "" {
		if err := os.MkdirAll(filepath.Dir(e.stagingPath(t.DepFile)), 0o755); err != nil {
			return err
		}
	}

	if t.Kind == classify.ZonPassthrough {
		if err := copyFile(e.assetPath(t.Input), e.stagingPath(t.Outputs[0])); err != nil {
			return err
		}
	} else {
		if err := converter.Run(ctx, converter.Command(t, e.cfg)); err != nil {
			return err
		}
	}

	return e.writeStamp(t)
}

// assetPath absolutizes a root-relative input path.
func (e *Executor) assetPath(rel string) string {
	return filepath.Join(e.cfg.AssetRoot, filepath.FromSlash(rel))
}

// stagingPath absolutizes a staging-relative output path.
func (e *Executor) stagingPath(rel string) string {
	return filepath.Join(e.cfg.StagingDir, filepath.FromSlash(rel))
}
