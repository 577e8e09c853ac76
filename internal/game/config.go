package game

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible shuffles,
	// enemy rolls and intents. A seed of 0 means a random seed will be generated.
	Seed int64 `mapstructure:"seed"`

	// ClassID selects the playable class from classes.json.
	ClassID string `mapstructure:"class"`

	// Overrides for the class values. Zero keeps the class value.
	StartingHP     int `mapstructure:"starting_hp"`
	StartingEnergy int `mapstructure:"starting_energy"`
	CardsPerDraw   int `mapstructure:"cards_per_draw"`

	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LogConfig configures the zap logger. The terminal belongs to the game, so
// logs go to a file.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"`
}

// TelemetryConfig toggles OTLP trace export.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		ClassID: "ironclad",
		Log: LogConfig{
			Level: "info",
			File:  "deckbound.log",
		},
		Telemetry: TelemetryConfig{Enabled: true},
	}
}

// LoadConfig reads configuration from the YAML file at path, if it exists,
// and from DECKBOUND_* environment variables, which take precedence
// (DECKBOUND_LOG_LEVEL sets log.level). An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix("deckbound")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot start with.
func (c Config) Validate() error {
	if c.ClassID == "" {
		return errors.New("config: class must be set")
	}
	if c.StartingHP < 0 || c.StartingEnergy < 0 || c.CardsPerDraw < 0 {
		return errors.New("config: overrides must not be negative")
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("seed", d.Seed)
	v.SetDefault("class", d.ClassID)
	v.SetDefault("starting_hp", d.StartingHP)
	v.SetDefault("starting_energy", d.StartingEnergy)
	v.SetDefault("cards_per_draw", d.CardsPerDraw)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("telemetry.enabled", d.Telemetry.Enabled)
}
