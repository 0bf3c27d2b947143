package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		basename string
		expected Kind
	}{
		{"tex.png", Texture},
		{"tex.jpg", Texture},
		{"tex.jpeg", Texture},
		{"tex.tga", Texture},
		{"blur.comp.glsl", ComputeShader},
		{"sprite.vf.glsl", VertexFragmentShader},
		{"level.zon", ZonPassthrough},
		{"font.atlas.zon", FontAtlas},

		// Overlays: <kind-tag>.zon, both extension-wide and file-specific.
		{".png.zon", Overlay},
		{"tex.png.zon", Overlay},
		{".jpg.zon", Overlay},
		{".vf.glsl.zon", Overlay},
		{"level.zon.zon", Overlay},

		// Auxiliary files consumed by other assets.
		{"common.glsl", Ignored},
		{"roboto.ttf", Ignored},
		{"readme.md", Ignored},

		{"noext", Unsupported},
		{"model.obj", Unsupported},
		{"archive.tar.gz", Unsupported},
		// Not an overlay: the prefix before .zon is no known kind tag.
		{"weird.ktx2.zon", Unsupported},
	}

	for _, tc := range testCases {
		t.Run(tc.basename, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.basename))
		})
	}
}

func TestAtlasBeatsGenericZon(t *testing.T) {
	// The exact-tag rule must win over both the generic passthrough tag and
	// the overlay rule.
	assert.Equal(t, FontAtlas, Classify("font.atlas.zon"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "texture", Texture.String())
	assert.Equal(t, "vertex-fragment-shader", VertexFragmentShader.String())
	assert.Equal(t, "unsupported", Unsupported.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
