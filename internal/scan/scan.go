// Package scan walks an asset root, classifies every regular file, and
// resolves the configuration-overlay chain for each accepted asset.
//
// The walk is a single recursive pass. Every directory it descends into is
// pushed on a stack together with an index of the overlay files it contains,
// so overlay probing for an asset is an O(1) name lookup per open ancestor
// rather than a second directory scan.
package scan

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vk/assetbake/internal/assetpath"
	"github.com/vk/assetbake/internal/classify"
	"github.com/vk/assetbake/internal/ctxlog"
)

// OverlayScope says how widely one overlay file applies.
type OverlayScope int

const (
	// ExtensionWide overlays (<extension>.zon) apply to every asset of that
	// extension within and below their directory.
	ExtensionWide OverlayScope = iota
	// FileSpecific overlays (<basename>.zon) apply to exactly one asset.
	FileSpecific
)

// Overlay is one configuration file contributing options to an asset.
type Overlay struct {
	// Path is root-relative, slash-separated.
	Path  string
	Scope OverlayScope
}

// Asset is one discovered candidate file. It is created during the walk and
// never mutated afterwards.
type Asset struct {
	// RelPath is root-relative and slash-separated.
	RelPath string
	// Ext is the full compound extension, e.g. ".vf.glsl".
	Ext  string
	Kind classify.Kind
	// Overlays is the resolved overlay chain, lowest precedence first:
	// extension-wide overlays from the root down to the asset's own
	// directory, then the file-specific overlay if present.
	Overlays []Overlay
}

// dirFrame is one open ancestor directory on the walk stack.
type dirFrame struct {
	// rel is the root-relative directory path, "" for the root itself.
	rel string
	// overlays holds the basenames of overlay files present in this
	// directory, for O(1) existence probes.
	overlays map[string]struct{}
}

// Scan enumerates all bakeable assets under root.
//
// Per entry: classification first (an Unsupported extension is fatal for the
// whole bake), then overlay and ignored files drop out (overlays feed only
// the resolver), then path validation (also fatal), then the underscore
// skip: a leading underscore excludes the entry and, for directories, its
// whole subtree without descending. Traversal order is the sorted directory
// order and carries no semantic weight.
func Scan(ctx context.Context, root string) ([]Asset, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scan: starting asset walk.", "root", root)

	var assets []Asset
	if err := walk(ctx, root, nil, "", &assets); err != nil {
		return nil, err
	}

	logger.Debug("Scan: walk complete.", "asset_count", len(assets))
	return assets, nil
}

// walk processes the directory relDir. ancestors holds the frames of every
// enclosing directory, root first; walk appends its own frame before any
// file in it is resolved.
func walk(ctx context.Context, root string, ancestors []*dirFrame, relDir string, assets *[]Asset) error {
	logger := ctxlog.FromContext(ctx)

	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(relDir)))
	if err != nil {
		return fmt.Errorf("reading asset directory: %w", err)
	}

	frame := &dirFrame{rel: relDir, overlays: make(map[string]struct{})}
	stack := make([]*dirFrame, 0, len(ancestors)+1)
	stack = append(stack, ancestors...)
	stack = append(stack, frame)

	// Index this directory's overlay files before touching any asset in it,
	// so same-directory overlays are always visible to the resolver.
	for _, entry := range entries {
		if !entry.IsDir() && classify.Classify(entry.Name()) == classify.Overlay {
			frame.overlays[entry.Name()] = struct{}{}
		}
	}

	for _, entry := range entries {
		name := entry.Name()
		rel := path.Join(relDir, name)

		if entry.IsDir() {
			if strings.HasPrefix(name, "_") {
				logger.Debug("Scan: skipping underscored subtree.", "path", rel)
				continue
			}
			if err := walk(ctx, root, stack, rel, assets); err != nil {
				return err
			}
			continue
		}

		kind := classify.Classify(name)
		switch kind {
		case classify.Unsupported:
			return fmt.Errorf("%w: %s", classify.ErrUnsupportedExtension, rel)
		case classify.Overlay:
			// Already indexed; never an asset.
			continue
		case classify.Ignored:
			continue
		}

		if err := assetpath.Validate(rel); err != nil {
			return err
		}
		if strings.HasPrefix(name, "_") {
			logger.Debug("Scan: skipping underscored file.", "path", rel)
			continue
		}

		*assets = append(*assets, Asset{
			RelPath:  rel,
			Ext:      assetpath.Ext(name),
			Kind:     kind,
			Overlays: resolveOverlays(stack, name),
		})
	}

	return nil
}

// resolveOverlays builds the ordered overlay chain for one asset: the
// extension-wide overlay at each ancestor level, root to leaf, then the
// file-specific overlay in the asset's own directory, appended last so the
// closest-to-file options win.
func resolveOverlays(stack []*dirFrame, basename string) []Overlay {
	var chain []Overlay

	wideName := assetpath.Ext(basename) + ".zon"
	for _, frame := range stack {
		if _, ok := frame.overlays[wideName]; ok {
			chain = append(chain, Overlay{
				Path:  path.Join(frame.rel, wideName),
				Scope: ExtensionWide,
			})
		}
	}

	own := stack[len(stack)-1]
	specificName := basename + ".zon"
	if _, ok := own.overlays[specificName]; ok {
		chain = append(chain, Overlay{
			Path:  path.Join(own.rel, specificName),
			Scope: FileSpecific,
		})
	}

	return chain
}
