package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Backtest.Symbol = "MSFT"
	cfg.Strategy.Name = "momentum"
	cfg.Strategy.Params = map[string]float64{"period": 10}

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := Default()
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backtest:\n  symbol: ''\n"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing symbol", func(c *Config) { c.Backtest.Symbol = "" }},
		{"zero capital", func(c *Config) { c.Backtest.InitialCapital = 0 }},
		{"negative capital", func(c *Config) { c.Backtest.InitialCapital = -5 }},
		{"commission out of range", func(c *Config) { c.Backtest.Commission = 1.5 }},
		{"negative slippage", func(c *Config) { c.Backtest.Slippage = -0.1 }},
		{"bad data source", func(c *Config) { c.Data.Source = "ftp" }},
		{"missing data path", func(c *Config) { c.Data.Path = "" }},
		{"missing strategy", func(c *Config) { c.Strategy.Name = "" }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
