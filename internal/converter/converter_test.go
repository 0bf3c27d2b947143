package converter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/assetbake/internal/classify"
	"github.com/vk/assetbake/internal/graph"
	"github.com/vk/assetbake/internal/manifest"
)

func testConfig() *manifest.Config {
	return &manifest.Config{
		AssetRoot:  filepath.FromSlash("/work/assets"),
		StagingDir: filepath.FromSlash("/work/staging"),
		InstallDir: filepath.FromSlash("/work/out"),
		Workers:    4,
		Tools: manifest.Tools{
			Texture:   "textoolc",
			Shader:    "shadercompc",
			FontAtlas: "atlascv",
		},
		Shader: manifest.Shader{
			Target:         "vulkan1.2",
			DefaultVersion: "450",
			Optimize:       true,
			Defines:        []string{"MAX_LIGHTS=4"},
			IncludePaths:   []string{"include"},
		},
	}
}

func abs(parts ...string) string {
	return filepath.Join(parts...)
}

func TestCommand_Texture(t *testing.T) {
	task := &graph.Task{
		Kind:     classify.Texture,
		Input:    "ui/logo.png",
		Overlays: []string{".png.zon", "ui/logo.png.zon"},
		Outputs:  []string{"ui/logo.ktx2"},
	}

	got := Command(task, testConfig())
	want := []string{
		"textoolc",
		"--config", abs("/work/assets", ".png.zon"),
		"--config", abs("/work/assets", "ui", "logo.png.zon"),
		"--input", abs("/work/assets", "ui", "logo.png"),
		"--output", abs("/work/staging", "ui", "logo.ktx2"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("texture argv mismatch (-want +got):\n%s", diff)
	}
}

func TestCommand_Shader(t *testing.T) {
	task := &graph.Task{
		Kind:    classify.VertexFragmentShader,
		Input:   "fx/sprite.vf.glsl",
		Outputs: []string{"fx/sprite.frag.spv"},
		Stage:   graph.StageFrag,
		DepFile: "fx/sprite.frag.spv.d",
	}

	got := Command(task, testConfig())
	want := []string{
		"shadercompc",
		"--stage", "frag",
		"--target", "vulkan1.2",
		"--default-version", "450",
		"-O",
		"--define", "MAX_LIGHTS=4",
		"--include-path", abs("/work/assets", "include"),
		abs("/work/assets", "fx", "sprite.vf.glsl"),
		"--write-deps", abs("/work/staging", "fx", "sprite.frag.spv.d"),
		abs("/work/staging", "fx", "sprite.frag.spv"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("shader argv mismatch (-want +got):\n%s", diff)
	}
}

func TestCommand_ShaderDebugUnoptimized(t *testing.T) {
	cfg := testConfig()
	cfg.Shader.Optimize = false
	cfg.Shader.Debug = true
	cfg.Shader.Defines = nil
	cfg.Shader.IncludePaths = nil

	task := &graph.Task{
		Kind:    classify.ComputeShader,
		Input:   "fx/blur.comp.glsl",
		Outputs: []string{"fx/blur.comp.spv"},
		Stage:   graph.StageComp,
		DepFile: "fx/blur.comp.spv.d",
	}

	got := Command(task, cfg)
	assert.Contains(t, got, "-O0")
	assert.Contains(t, got, "-g")
	assert.NotContains(t, got, "-O")
	assert.NotContains(t, got, "--define")
	assert.NotContains(t, got, "--include-path")
}

func TestCommand_FontAtlas(t *testing.T) {
	task := &graph.Task{
		Kind:    classify.FontAtlas,
		Input:   "fonts/roboto.atlas.zon",
		Outputs: []string{"fonts/roboto.atlas", "fonts/roboto.atlas.ktx2"},
		DepFile: "fonts/roboto.atlas.d",
	}

	got := Command(task, testConfig())
	want := []string{
		"atlascv",
		"--config-path", abs("/work/assets", "fonts", "roboto.atlas.zon"),
		"--write-deps", abs("/work/staging", "fonts", "roboto.atlas.d"),
		"--output-metadata-path", abs("/work/staging", "fonts", "roboto.atlas"),
		"--output-atlas-path", abs("/work/staging", "fonts", "roboto.atlas.ktx2"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("font atlas argv mismatch (-want +got):\n%s", diff)
	}
}

func TestCommand_PassthroughHasNoArgv(t *testing.T) {
	task := &graph.Task{
		Kind:    classify.ZonPassthrough,
		Input:   "levels/hub.zon",
		Outputs: []string{"levels/hub.zon"},
	}
	assert.Nil(t, Command(task, testConfig()))
}

func TestRun_SurfacesToolOutputOnFailure(t *testing.T) {
	err := Run(context.Background(), []string{"sh", "-c", "echo bad input >&2; exit 3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad input")
}

func TestRun_Succeeds(t *testing.T) {
	require.NoError(t, Run(context.Background(), []string{"sh", "-c", "true"}))
}
