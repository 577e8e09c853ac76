package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ironclad", cfg.ClassID)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deckbound.yaml")
	data := []byte(`
seed: 42
class: ironclad
starting_hp: 50
log:
  level: debug
  file: run.log
telemetry:
  enabled: false
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("DECKBOUND_CARDS_PER_DRAW", "6")
	t.Setenv("DECKBOUND_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 50, cfg.StartingHP)
	assert.Equal(t, 0, cfg.StartingEnergy)
	assert.Equal(t, 6, cfg.CardsPerDraw, "env sets keys absent from the file")
	assert.Equal(t, "warn", cfg.Log.Level, "env overrides the file")
	assert.Equal(t, "run.log", cfg.Log.File)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [1, 2\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"no class", func(c *Config) { c.ClassID = "" }, true},
		{"negative hp", func(c *Config) { c.StartingHP = -1 }, true},
		{"negative draw", func(c *Config) { c.CardsPerDraw = -2 }, true},
		{"overrides", func(c *Config) { c.StartingHP = 10; c.StartingEnergy = 4 }, false},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
