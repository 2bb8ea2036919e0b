package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"barber-prices/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSources(), cfg.Sources)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  concurrency: -1\n"), 0o600))

	_, err := loadConfig(path)
	assert.ErrorContains(t, err, "concurrency")
}

func TestSourcesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sources:
  - name: Salon
    url: https://salon.example.rs
    grammar: sentence
    service: haircut
`), 0o600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"sources", "--config", path})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "Salon")
	assert.Contains(t, out, "colly")
	assert.Contains(t, out, "1 sources")
}
