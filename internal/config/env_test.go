package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEnvFiles_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DOCSITE_ENV_A=from-file\nDOCSITE_ENV_B=\"quoted value\"\n"), 0o600))

	t.Setenv("DOCSITE_ENV_A", "from-process")
	t.Setenv("DOCSITE_ENV_B", "")
	require.NoError(t, os.Unsetenv("DOCSITE_ENV_B"))

	loadEnvFiles(dir)

	require.Equal(t, "from-process", os.Getenv("DOCSITE_ENV_A"))
	require.Equal(t, "quoted value", os.Getenv("DOCSITE_ENV_B"))
}

func TestLoad_ReadsEnvFileNextToConfig(t *testing.T) {
	site := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(site, ".env"),
		[]byte("DOCSITE_ENV_PM=pnpm\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(site, "docsite.yaml"),
		[]byte("tooling:\n  package_manager: ${DOCSITE_ENV_PM}\n"), 0o600))

	t.Setenv("DOCSITE_ENV_PM", "")
	require.NoError(t, os.Unsetenv("DOCSITE_ENV_PM"))

	cfg, err := Load(filepath.Join(site, "docsite.yaml"))
	require.NoError(t, err)
	require.Equal(t, "pnpm", cfg.Tooling.PackageManager)
}
