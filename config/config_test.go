package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, EngineColly, cfg.Fetch.Engine)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 4, cfg.Pipeline.Concurrency)
	assert.Len(t, cfg.Sources, len(DefaultSources()))
}

func TestParse_KeepsDefaultSources(t *testing.T) {
	cfg, err := Parse([]byte(`
fetch:
  timeout: 10s
  rate: 0.5
pipeline:
  concurrency: 2
filters:
  min_price: 200
  max_price: 20000
telegram:
  allowed_users: [1, 2]
`))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 0.5, cfg.Fetch.Rate)
	assert.Equal(t, 2, cfg.Pipeline.Concurrency)
	assert.Equal(t, FilterConfig{MinPrice: 200, MaxPrice: 20000}, cfg.Filters)
	assert.Equal(t, []int64{1, 2}, cfg.Telegram.AllowedUsers)
	assert.Equal(t, DefaultSources(), cfg.Sources)
}

func TestParse_CustomSources(t *testing.T) {
	cfg, err := Parse([]byte(`
sources:
  - name: Salon
    url: https://salon.example.rs/cenovnik
    grammar: line_item
    engine: rod
    items:
      - service: haircut
        label: Šišanje
        layout: static
    inference:
      - label: Šišanje i brada
        layout: static
        known: haircut
        missing: beard
`))
	require.NoError(t, err)
	require.Len(t, cfg.Sources, 1)

	src := cfg.Sources[0]
	assert.Equal(t, EngineRod, cfg.EngineFor(src))
	assert.Equal(t, "Šišanje", src.Items[0].Label)
	assert.Equal(t, "beard", src.Inference[0].Missing)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "fetch: [", "failed to parse"},
		{"engine", "fetch:\n  engine: curl\n", "unknown engine"},
		{"concurrency", "pipeline:\n  concurrency: 0\n", "concurrency"},
		{"filter bounds", "filters:\n  min_price: 500\n  max_price: 100\n", "exceeds"},
		{"missing url", "sources:\n  - name: A\n    grammar: sentence\n    service: haircut\n", "url is required"},
		{"unknown grammar", "sources:\n  - name: A\n    url: u\n    grammar: table\n", "unknown grammar"},
		{"unknown service", "sources:\n  - name: A\n    url: u\n    grammar: sentence\n    service: massage\n", "unknown service"},
		{"no items", "sources:\n  - name: A\n    url: u\n    grammar: line_item\n", "at least one item"},
		{
			"duplicate",
			"sources:\n  - {name: A, url: u, grammar: sentence, service: haircut}\n  - {name: A, url: v, grammar: sentence, service: beard}\n",
			"duplicate name",
		},
		{
			"self inference",
			"sources:\n  - name: A\n    url: u\n    grammar: line_item\n    items: [{service: haircut, label: X}]\n    inference: [{label: Y, known: beard, missing: beard}]\n",
			"both beard",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BARBER_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("LOG_MODE", "production")

	cfg := GetDefaultConfig()
	cfg.ApplyEnv()
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "production", cfg.Log.Mode)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheets:\n  sheet_name: Test\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Test", cfg.Sheets.SheetName)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}
