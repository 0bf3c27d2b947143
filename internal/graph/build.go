package graph

import (
	"context"
	"fmt"
	"path"

	"github.com/vk/assetbake/internal/assetpath"
	"github.com/vk/assetbake/internal/classify"
	"github.com/vk/assetbake/internal/ctxlog"
	"github.com/vk/assetbake/internal/scan"
)

// Build constructs a complete, validated task graph from scanned assets.
//
// Construction is single-threaded and deterministic for a given asset list.
// Any taxonomy error (unexpected overlay, output collision) aborts the whole
// build: a malformed graph must never be partially executed.
func Build(ctx context.Context, assets []scan.Asset) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "asset_count", len(assets))

	g := &Graph{outputs: make(map[string]string)}
	for i := range assets {
		if err := g.addAsset(&assets[i]); err != nil {
			return nil, err
		}
	}

	logger.Debug("Build: graph construction successful.", "task_count", len(g.Tasks))
	return g, nil
}

// addAsset dispatches on the asset kind and appends its task(s).
func (g *Graph) addAsset(a *scan.Asset) error {
	dir := path.Dir(a.RelPath)
	stem := assetpath.Stem(path.Base(a.RelPath))

	switch a.Kind {
	case classify.Texture:
		return g.addTask(&Task{
			Kind:     classify.Texture,
			Input:    a.RelPath,
			Overlays: overlayPaths(a),
			Outputs:  []string{path.Join(dir, stem+".ktx2")},
		})

	case classify.ComputeShader:
		if err := rejectOverlays(a); err != nil {
			return err
		}
		out := path.Join(dir, stem+".comp.spv")
		return g.addTask(&Task{
			Kind:    classify.ComputeShader,
			Input:   a.RelPath,
			Outputs: []string{out},
			Stage:   StageComp,
			DepFile: out + ".d",
		})

	case classify.VertexFragmentShader:
		if err := rejectOverlays(a); err != nil {
			return err
		}
		// One source, two invocations: the vertex and fragment stages are
		// compiled independently from the same file.
		for _, stage := range []Stage{StageVert, StageFrag} {
			out := path.Join(dir, stem+"."+string(stage)+".spv")
			err := g.addTask(&Task{
				Kind:    classify.VertexFragmentShader,
				Input:   a.RelPath,
				Outputs: []string{out},
				Stage:   stage,
				DepFile: out + ".d",
			})
			if err != nil {
				return err
			}
		}
		return nil

	case classify.ZonPassthrough:
		if err := rejectOverlays(a); err != nil {
			return err
		}
		return g.addTask(&Task{
			Kind:    classify.ZonPassthrough,
			Input:   a.RelPath,
			Outputs: []string{a.RelPath},
		})

	case classify.FontAtlas:
		if err := rejectOverlays(a); err != nil {
			return err
		}
		meta := path.Join(dir, stem+".atlas")
		return g.addTask(&Task{
			Kind:    classify.FontAtlas,
			Input:   a.RelPath,
			Outputs: []string{meta, meta + ".ktx2"},
			DepFile: meta + ".d",
		})
	}

	return fmt.Errorf("%w: %s (kind %s)", classify.ErrUnsupportedExtension, a.RelPath, a.Kind)
}

// addTask registers the task's declared outputs in the collision set and
// appends it. Registration is order-independent: only set membership
// matters, never which task was seen first.
func (g *Graph) addTask(t *Task) error {
	for _, out := range t.Outputs {
		if prev, taken := g.outputs[out]; taken {
			return fmt.Errorf("%w: %s claimed by both %s and %s", ErrOutputCollision, out, prev, t.Input)
		}
		g.outputs[out] = t.Input
	}
	g.Tasks = append(g.Tasks, t)
	return nil
}

// rejectOverlays fails when an overlay chain was resolved for a kind that
// takes no configuration, naming the offending overlay.
func rejectOverlays(a *scan.Asset) error {
	if len(a.Overlays) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s does not accept overlays, found %s",
		ErrUnexpectedConfig, a.RelPath, a.Overlays[0].Path)
}

// overlayPaths flattens the resolved chain into converter-ready paths,
// preserving the low-to-high precedence order.
func overlayPaths(a *scan.Asset) []string {
	if len(a.Overlays) == 0 {
		return nil
	}
	paths := make([]string, len(a.Overlays))
	for i, ov := range a.Overlays {
		paths[i] = ov.Path
	}
	return paths
}
