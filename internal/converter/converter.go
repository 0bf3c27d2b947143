// Package converter is the boundary to the external conversion tools. It
// assembles the stable argument contract for each asset kind and runs the
// tool as a child process. It never inspects asset or overlay contents.
package converter

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/vk/assetbake/internal/classify"
	"github.com/vk/assetbake/internal/ctxlog"
	"github.com/vk/assetbake/internal/graph"
	"github.com/vk/assetbake/internal/manifest"
)

// Command assembles the full argv for one task. Inputs and overlays are
// absolutized against the asset root, outputs and depfiles against the
// staging directory. Passthrough tasks run no external tool and yield nil.
func Command(t *graph.Task, cfg *manifest.Config) []string {
	in := func(rel string) string { return filepath.Join(cfg.AssetRoot, filepath.FromSlash(rel)) }
	out := func(rel string) string { return filepath.Join(cfg.StagingDir, filepath.FromSlash(rel)) }

	switch t.Kind {
	case classify.Texture:
		argv := []string{cfg.Tools.Texture}
		for _, ov := range t.Overlays {
			argv = append(argv, "--config", in(ov))
		}
		return append(argv, "--input", in(t.Input), "--output", out(t.Outputs[0]))

	case classify.ComputeShader, classify.VertexFragmentShader:
		sh := cfg.Shader
		argv := []string{
			cfg.Tools.Shader,
			"--stage", string(t.Stage),
			"--target", sh.Target,
			"--default-version", sh.DefaultVersion,
		}
		if sh.Optimize {
			argv = append(argv, "-O")
		} else {
			argv = append(argv, "-O0")
		}
		if sh.Debug {
			argv = append(argv, "-g")
		}
		for _, def := range sh.Defines {
			argv = append(argv, "--define", def)
		}
		for _, inc := range sh.IncludePaths {
			argv = append(argv, "--include-path", resolveInclude(cfg.AssetRoot, inc))
		}
		argv = append(argv, in(t.Input))
		argv = append(argv, "--write-deps", out(t.DepFile))
		return append(argv, out(t.Outputs[0]))

	case classify.FontAtlas:
		return []string{
			cfg.Tools.FontAtlas,
			"--config-path", in(t.Input),
			"--write-deps", out(t.DepFile),
			"--output-metadata-path", out(t.Outputs[0]),
			"--output-atlas-path", out(t.Outputs[1]),
		}
	}

	// ZonPassthrough: the executor copies the file itself.
	return nil
}

// Run invokes one assembled converter command and surfaces its output on
// failure. Converter stdout is intentionally discarded on success.
func Run(ctx context.Context, argv []string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Converter invocation.", "argv", argv)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	combined, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("converter %s failed: %w\n%s", argv[0], err, combined)
	}
	return nil
}

// resolveInclude keeps absolute include paths untouched and anchors relative
// ones at the asset root.
func resolveInclude(assetRoot, inc string) string {
	if filepath.IsAbs(inc) {
		return inc
	}
	return filepath.Join(assetRoot, inc)
}
