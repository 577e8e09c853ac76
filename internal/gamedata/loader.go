package gamedata

import (
	"encoding/json"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"
)

// Load reads and unmarshals a definition file from the embedded filesystem.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	switch path.Ext(filename) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &result); err != nil {
			return result, fmt.Errorf("failed to parse YAML from %s: %w", filename, err)
		}
	default:
		if err := json.Unmarshal(content, &result); err != nil {
			return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
		}
	}

	return result, nil
}

// MustLoad reads and unmarshals a definition file, panicking on error.
// Use this for data that must be present for the game to function.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}
