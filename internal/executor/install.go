package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/assetbake/internal/ctxlog"
)

// install is the aggregation step: it copies every task's declared outputs
// from the staging area into the install tree under their final relative
// paths. It runs strictly after all tasks succeeded; collisions were already
// ruled out when the graph was built.
func (e *Executor) install(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	installed := 0
	for _, t := range e.graph.Tasks {
		for _, out := range t.Outputs {
			dst := filepath.Join(e.cfg.InstallDir, filepath.FromSlash(out))
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				return err
			}
			if err := copyFile(e.stagingPath(out), dst); err != nil {
				return fmt.Errorf("installing %s: %w", out, err)
			}
			installed++
		}
	}

	logger.Info("Outputs installed.", "count", installed, "install_dir", e.cfg.InstallDir)
	return nil
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
