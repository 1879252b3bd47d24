package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load returns the simulation configuration.
// Search order: customPath -> ~/.flappy/config.yaml -> ./configs/flappy.yaml -> embedded default.
// Files are overlaid on the embedded defaults, so a file only needs the keys it changes.
func Load(customPath string) (FlappyConfig, error) {
	cfg, err := defaults()
	if err != nil {
		return cfg, err
	}

	// An explicit path must exist and parse
	if customPath != "" {
		if err := overlay(&cfg, customPath); err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "flappy.yaml")} {
		if path == "" {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		candidate := cfg
		if err := overlay(&candidate, path); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	return cfg, nil
}

// defaults decodes the embedded YAML, falling back to the hardcoded config.
func defaults() (FlappyConfig, error) {
	var cfg FlappyConfig
	if err := yaml.Unmarshal(defaultFlappyYAML, &cfg); err != nil {
		return DefaultFlappyConfig(), nil
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: embedded defaults: %w", err)
	}
	return cfg, nil
}

// overlay decodes the file at path on top of cfg.
func overlay(cfg *FlappyConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", filename)
}

// Marshal encodes the config as YAML.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshaling: %w", err)
	}
	return data, nil
}
