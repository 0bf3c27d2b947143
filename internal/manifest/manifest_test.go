package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bake.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullManifest(t *testing.T) {
	path := writeManifest(t, `
bake {
  asset_root  = "assets"
  staging_dir = "work/staging"
  install_dir = "dist/data"
  workers     = 4
}

tools {
  texture    = "mytex"
  shader     = "myshader"
  font_atlas = "myatlas"
}

shader {
  target          = "vulkan1.3"
  default_version = "460"
  optimize        = false
  debug           = true
  define          = ["A=1", "B=2"]
  include_path    = ["shaders/include"]
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	base := filepath.Dir(path)
	assert.Equal(t, filepath.Join(base, "assets"), cfg.AssetRoot)
	assert.Equal(t, filepath.Join(base, "work", "staging"), cfg.StagingDir)
	assert.Equal(t, filepath.Join(base, "dist", "data"), cfg.InstallDir)
	assert.Equal(t, 4, cfg.Workers)

	assert.Equal(t, Tools{Texture: "mytex", Shader: "myshader", FontAtlas: "myatlas"}, cfg.Tools)
	assert.Equal(t, Shader{
		Target:         "vulkan1.3",
		DefaultVersion: "460",
		Optimize:       false,
		Debug:          true,
		Defines:        []string{"A=1", "B=2"},
		IncludePaths:   []string{"shaders/include"},
	}, cfg.Shader)
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeManifest(t, `
bake {
  asset_root  = "assets"
  install_dir = "dist"
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	base := filepath.Dir(path)
	assert.Equal(t, filepath.Join(base, ".assetbake"), cfg.StagingDir)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, "textoolc", cfg.Tools.Texture)
	assert.Equal(t, "shadercompc", cfg.Tools.Shader)
	assert.Equal(t, "atlascv", cfg.Tools.FontAtlas)
	assert.Equal(t, "vulkan1.2", cfg.Shader.Target)
	assert.Equal(t, "450", cfg.Shader.DefaultVersion)
	assert.True(t, cfg.Shader.Optimize)
	assert.False(t, cfg.Shader.Debug)
}

func TestLoad_ManifestDirVariable(t *testing.T) {
	path := writeManifest(t, `
bake {
  asset_root  = "${manifest_dir}/assets"
  install_dir = "${manifest_dir}/dist"
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	base := filepath.Dir(path)
	assert.Equal(t, filepath.Join(base, "assets"), cfg.AssetRoot)
	assert.Equal(t, filepath.Join(base, "dist"), cfg.InstallDir)
}

func TestLoad_MissingBakeBlock(t *testing.T) {
	path := writeManifest(t, `
tools {
  texture = "mytex"
}
`)

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bake block")
}

func TestLoad_InvalidWorkers(t *testing.T) {
	path := writeManifest(t, `
bake {
  asset_root  = "assets"
  install_dir = "dist"
  workers     = -2
}
`)

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
}

func TestLoad_ParseErrorIsSurfaced(t *testing.T) {
	path := writeManifest(t, `bake { asset_root = `)

	_, err := Load(context.Background(), path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
}
