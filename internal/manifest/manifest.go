// Package manifest loads the bake manifest: the orchestrator's own HCL
// settings file. It is distinct from per-asset .zon overlays, whose contents
// stay opaque to this tool and are only forwarded by path to the converters.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/assetbake/internal/ctxlog"
)

// Tools names the external converter binaries, one per asset family.
type Tools struct {
	Texture   string
	Shader    string
	FontAtlas string
}

// Shader holds the options forwarded to every shader-compiler invocation.
type Shader struct {
	Target         string
	DefaultVersion string
	Optimize       bool
	Debug          bool
	Defines        []string
	IncludePaths   []string
}

// Config is the fully resolved manifest. Directory fields are absolute.
type Config struct {
	AssetRoot  string
	StagingDir string
	InstallDir string
	Workers    int
	Tools      Tools
	Shader     Shader
}

// --- HCL schema ---

type bakeBlock struct {
	AssetRoot  string `hcl:"asset_root"`
	StagingDir string `hcl:"staging_dir,optional"`
	InstallDir string `hcl:"install_dir"`
	Workers    int    `hcl:"workers,optional"`
}

type toolsBlock struct {
	Texture   string `hcl:"texture,optional"`
	Shader    string `hcl:"shader,optional"`
	FontAtlas string `hcl:"font_atlas,optional"`
}

type shaderBlock struct {
	Target         string   `hcl:"target,optional"`
	DefaultVersion string   `hcl:"default_version,optional"`
	Optimize       *bool    `hcl:"optimize,optional"`
	Debug          bool     `hcl:"debug,optional"`
	Defines        []string `hcl:"define,optional"`
	IncludePaths   []string `hcl:"include_path,optional"`
}

type fileRoot struct {
	Bake   *bakeBlock   `hcl:"bake,block"`
	Tools  *toolsBlock  `hcl:"tools,block"`
	Shader *shaderBlock `hcl:"shader,block"`
}

// Load parses and validates the manifest at path. Relative directories in
// the bake block resolve against the manifest's own directory, which is also
// exposed to HCL expressions as the manifest_dir variable.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path", path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving manifest path: %w", err)
	}
	manifestDir := filepath.Dir(absPath)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(absPath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"manifest_dir": cty.StringVal(manifestDir),
		},
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}
	if root.Bake == nil {
		return nil, errors.New("manifest is missing the required bake block")
	}

	cfg := applyDefaults(&root)
	cfg.AssetRoot = resolveDir(manifestDir, cfg.AssetRoot)
	cfg.StagingDir = resolveDir(manifestDir, cfg.StagingDir)
	cfg.InstallDir = resolveDir(manifestDir, cfg.InstallDir)

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	}

	logger.Debug("Manifest loaded.", "asset_root", cfg.AssetRoot, "install_dir", cfg.InstallDir)
	return cfg, nil
}

// applyDefaults fills every optional knob the manifest left unset.
func applyDefaults(root *fileRoot) *Config {
	cfg := &Config{
		AssetRoot:  root.Bake.AssetRoot,
		StagingDir: root.Bake.StagingDir,
		InstallDir: root.Bake.InstallDir,
		Workers:    root.Bake.Workers,
		Tools: Tools{
			Texture:   "textoolc",
			Shader:    "shadercompc",
			FontAtlas: "atlascv",
		},
		Shader: Shader{
			Target:         "vulkan1.2",
			DefaultVersion: "450",
			Optimize:       true,
		},
	}
	if cfg.StagingDir == "" {
		cfg.StagingDir = ".assetbake"
	}
	if cfg.Workers == 0 {
		cfg.Workers = 10
	}

	if t := root.Tools; t != nil {
		if t.Texture != "" {
			cfg.Tools.Texture = t.Texture
		}
		if t.Shader != "" {
			cfg.Tools.Shader = t.Shader
		}
		if t.FontAtlas != "" {
			cfg.Tools.FontAtlas = t.FontAtlas
		}
	}
	if s := root.Shader; s != nil {
		if s.Target != "" {
			cfg.Shader.Target = s.Target
		}
		if s.DefaultVersion != "" {
			cfg.Shader.DefaultVersion = s.DefaultVersion
		}
		if s.Optimize != nil {
			cfg.Shader.Optimize = *s.Optimize
		}
		cfg.Shader.Debug = s.Debug
		cfg.Shader.Defines = s.Defines
		cfg.Shader.IncludePaths = s.IncludePaths
	}
	return cfg
}

// resolveDir makes dir absolute relative to base.
func resolveDir(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
