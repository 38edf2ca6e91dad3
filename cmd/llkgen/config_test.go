package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ".llkgen.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfig_ReadsProjectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".llkgen.toml")
	contents := "k = 3\nimports = \"import \\\"fmt\\\"\"\nout_dir = \"gen\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.K)
	assert.Equal(t, "gen", cfg.OutDir)
	assert.Contains(t, cfg.Imports, "fmt")
}

func TestLoadConfig_FillsZeroKAndEmptyOutDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".llkgen.toml")
	require.NoError(t, os.WriteFile(path, []byte("k = 0\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.K)
	assert.Equal(t, ".", cfg.OutDir)
}

func TestLoadConfig_RejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".llkgen.toml")
	require.NoError(t, os.WriteFile(path, []byte("k = ["), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
