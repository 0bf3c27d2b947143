// Package classify maps a basename's compound extension to an asset kind.
//
// The kind set is intentionally closed: every switch over Kind is meant to
// be exhaustive, and an extension nobody recognizes is always either a typo
// or a missing format handler, so it aborts the bake instead of being
// silently skipped.
package classify

import (
	"errors"
	"strings"

	"github.com/vk/assetbake/internal/assetpath"
)

// Kind is the classification of one discovered file.
type Kind int

const (
	// Unsupported is an extension no rule recognizes. Fatal at scan time.
	Unsupported Kind = iota
	// Texture is a source image compressed to a .ktx2 texture.
	Texture
	// ComputeShader is a .comp.glsl source compiled to one SPIR-V module.
	ComputeShader
	// VertexFragmentShader is a .vf.glsl source compiled twice, once per stage.
	VertexFragmentShader
	// ZonPassthrough is a plain .zon data file installed verbatim.
	ZonPassthrough
	// FontAtlas is an .atlas.zon recipe compiled to metadata plus an atlas image.
	FontAtlas
	// Overlay is a configuration overlay file, never an asset itself.
	Overlay
	// Ignored is an auxiliary file consumed by other assets (shader
	// includes, font sources, docs) and not independently baked.
	Ignored
)

// ErrUnsupportedExtension aborts the whole bake; see package doc.
var ErrUnsupportedExtension = errors.New("unsupported asset extension")

// kindTags maps each bakeable kind's compound-extension tag. Texture spans
// several source formats, which is exactly why output collisions are
// reachable: logo.png and logo.jpg both derive logo.ktx2.
var kindTags = map[string]Kind{
	".png":       Texture,
	".jpg":       Texture,
	".jpeg":      Texture,
	".tga":       Texture,
	".comp.glsl": ComputeShader,
	".vf.glsl":   VertexFragmentShader,
	".zon":       ZonPassthrough,
	".atlas.zon": FontAtlas,
}

// ignoredSuffixes are includable/auxiliary files: raw GLSL headers pulled in
// by shaders, TTF sources consumed by atlas recipes, and docs.
var ignoredSuffixes = []string{".glsl", ".ttf", ".md"}

// Classify returns the kind of the given basename.
//
// Rules, in order: an exact compound-extension match wins (so .atlas.zon is
// FontAtlas, not a generic .zon passthrough); an extension of the form
// <kind-tag>.zon is a configuration Overlay; a basename ending in an ignored
// suffix is Ignored; everything else is Unsupported.
func Classify(basename string) Kind {
	ext := assetpath.Ext(basename)

	if kind, ok := kindTags[ext]; ok {
		return kind
	}
	if prefix, ok := strings.CutSuffix(ext, ".zon"); ok {
		if _, known := kindTags[prefix]; known {
			return Overlay
		}
	}
	for _, suffix := range ignoredSuffixes {
		if strings.HasSuffix(basename, suffix) {
			return Ignored
		}
	}
	return Unsupported
}

// String returns the lowercase name of the kind, for logs and errors.
func (k Kind) String() string {
	switch k {
	case Texture:
		return "texture"
	case ComputeShader:
		return "compute-shader"
	case VertexFragmentShader:
		return "vertex-fragment-shader"
	case ZonPassthrough:
		return "zon-passthrough"
	case FontAtlas:
		return "font-atlas"
	case Overlay:
		return "overlay"
	case Ignored:
		return "ignored"
	case Unsupported:
		return "unsupported"
	}
	return "unknown"
}
