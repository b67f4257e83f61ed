package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsZeroValue(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Filters)
	assert.Empty(t, cfg.Engine)
	assert.False(t, cfg.Verbose)
}

func TestLoadYml(t *testing.T) {
	dir := t.TempDir()
	content := `excludeDirs:
  - vendor
  - testdata
filters:
  - main
  - GLOBAL
engine: dot
verbose: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "callflow.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor", "testdata"}, cfg.ExcludeDirs)
	assert.Equal(t, []string{"main", "GLOBAL"}, cfg.Filters)
	assert.Equal(t, "dot", cfg.Engine)
	assert.True(t, cfg.Verbose)
}

func TestLoadYamlFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "callflow.yaml"), []byte("engine: neato\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "neato", cfg.Engine)
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "callflow.yml"), []byte("engine: [unclosed"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
