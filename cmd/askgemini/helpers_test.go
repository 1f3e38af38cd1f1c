package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPath_ExplicitWins(t *testing.T) {
	assert.Equal(t, "/etc/custom.yaml", resolveConfigPath("/etc/custom.yaml", ".askgemini"))
}

func TestResolveConfigPath_AppDir(t *testing.T) {
	dir := t.TempDir()
	appDir := filepath.Join(dir, ".askgemini")
	require.NoError(t, os.MkdirAll(appDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.yaml"), []byte("model: x\n"), 0o600))

	assert.Equal(t, filepath.Join(appDir, "config.yaml"), resolveConfigPath("", appDir))
}

func TestResolveConfigPath_Fallback(t *testing.T) {
	assert.Equal(t, "askgemini.yaml", resolveConfigPath("", filepath.Join(t.TempDir(), "missing")))
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadDotEnv_LoadsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ASKGEMINI_DOTENV_TEST=from-dotenv\n"), 0o600))
	t.Setenv("ASKGEMINI_DOTENV_TEST", "")
	os.Unsetenv("ASKGEMINI_DOTENV_TEST")

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv("ASKGEMINI_DOTENV_TEST"))
}
