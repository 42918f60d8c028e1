package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type validator interface {
	Validate() error
}

// load builds a config from the embedded default and overlays the first
// file found on the search path:
// customPath -> ~/.gridsim/configs/<id>.yaml -> ./configs/<id>.yaml.
// Keys missing from the file keep their default value.
func load[T validator](id, customPath string, fallback func() T) (T, error) {
	cfg := fallback()
	if err := yaml.Unmarshal(GetDefaultYAML(id), &cfg); err != nil {
		cfg = fallback() // Hardcoded values if the embedded file is broken
	}

	filename := id + ".yaml"
	switch {
	case customPath != "":
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
	default:
		for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
			if path == "" {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			overlay := cfg
			if err := yaml.Unmarshal(data, &overlay); err != nil {
				continue
			}
			cfg = overlay
			break
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConway loads the Conway configuration.
func LoadConway(customPath string) (ConwayConfig, error) {
	return load("conway", customPath, DefaultConwayConfig)
}

// LoadForest loads the forest-fire configuration.
func LoadForest(customPath string) (ForestConfig, error) {
	return load("forest", customPath, DefaultForestConfig)
}

// LoadLangton loads the Langton's ant configuration.
func LoadLangton(customPath string) (LangtonConfig, error) {
	return load("langton", customPath, DefaultLangtonConfig)
}

// WriteDefault copies the embedded default for id to path, creating
// parent directories. An existing file is left untouched.
func WriteDefault(id, path string) (bool, error) {
	data := GetDefaultYAML(id)
	if data == nil {
		return false, fmt.Errorf("config: no defaults for %q", id)
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("config: create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return true, nil
}

// userConfigPath returns the path inside ~/.gridsim/configs, or empty if
// the home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridsim", "configs", filename)
}

// UserConfigPath exposes the per-user location for id's config file.
func UserConfigPath(id string) string {
	return userConfigPath(id + ".yaml")
}
