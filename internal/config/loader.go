package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when CONFIG_PATH is unset.
const DefaultPath = "./config.yaml"

// Load reads configuration from CONFIG_PATH (fallback DefaultPath) and the
// environment. Priority: ENV > YAML > defaults (via env-default tags).
// A missing DefaultPath is not an error; a missing CONFIG_PATH file is.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return LoadFrom(path)
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return LoadFrom(DefaultPath)
	}
	return LoadFrom("")
}

// LoadFrom reads the YAML file at path, or only the environment when path
// is empty, and validates the result.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
