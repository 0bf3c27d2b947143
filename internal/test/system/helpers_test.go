package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixture is one on-disk bake setup: a manifest plus an asset tree.
type fixture struct {
	ManifestPath string
	AssetRoot    string
	InstallDir   string
}

// writeFixture lays out a manifest and the given asset files (relative to
// the asset root, with placeholder contents) under a fresh temp directory.
func writeFixture(t *testing.T, assets map[string]string) fixture {
	t.Helper()
	dir := t.TempDir()

	for rel, content := range assets {
		abs := filepath.Join(dir, "assets", filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))

	manifestPath := filepath.Join(dir, "bake.hcl")
	manifest := `
bake {
  asset_root  = "assets"
  staging_dir = "staging"
  install_dir = "dist"
  workers     = 2
}
`
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

	return fixture{
		ManifestPath: manifestPath,
		AssetRoot:    filepath.Join(dir, "assets"),
		InstallDir:   filepath.Join(dir, "dist"),
	}
}
