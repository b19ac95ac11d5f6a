package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	require.Equal(t, "docs", cfg.Site.ContentDir)
	require.Equal(t, "build", cfg.Site.BuildDir)
	require.Equal(t, ".docusaurus", cfg.Site.CacheDir)
	require.Equal(t, "npm", cfg.Tooling.PackageManager)
	require.Equal(t, []string{"run", "build"}, cfg.Tooling.Scripts[ScriptBuild])
	require.Equal(t, []string{"start"}, cfg.Tooling.Scripts[ScriptStart])
	require.Equal(t, DefaultSyncSource, cfg.Sync.Source)
	require.Equal(t, "sidebars.yaml", cfg.Navigation.SidebarsFile)
	require.Equal(t, "features.yaml", cfg.Homepage.FeaturesFile)
}

func TestLoad_OverridesAndEnvExpansion(t *testing.T) {
	t.Setenv("DOCSITE_TEST_SOURCE", "/srv/upstream/docs")
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	yml := `site:
  content_dir: content
tooling:
  package_manager: yarn
  scripts:
    build: ["build"]
sync:
  source: ${DOCSITE_TEST_SOURCE}
  watch_interval: 10m
metrics:
  textfile: metrics.prom
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "content", cfg.Site.ContentDir)
	require.Equal(t, "yarn", cfg.Tooling.PackageManager)
	require.Equal(t, []string{"build"}, cfg.Tooling.Scripts[ScriptBuild])
	require.Equal(t, []string{"run", "serve"}, cfg.Tooling.Scripts[ScriptServe], "unspecified scripts keep defaults")
	require.Equal(t, "/srv/upstream/docs", cfg.Sync.Source)
	require.Equal(t, 10*time.Minute, cfg.Sync.WatchInterval.Std())
	require.Equal(t, "metrics.prom", cfg.Metrics.Textfile)
}

func TestLoad_InvalidYAMLIsConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestLoad_UnknownScriptRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tooling:\n  scripts:\n    publish: [\"run\", \"publish\"]\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
}

func TestLoad_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sync:\n  watch_interval: soon\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateConfig_RejectsRootCleanTarget(t *testing.T) {
	cfg := &Config{Site: SiteConfig{BuildDir: "."}}
	require.NoError(t, applyDefaults(cfg))
	require.Error(t, ValidateConfig(cfg))
}

func TestInit_WritesLoadableFileAndRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Foundation Models Documentation", cfg.Site.Title)
	require.Equal(t, "0", cfg.Tooling.Env["DOCUSAURUS_TELEMETRY"])

	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}
