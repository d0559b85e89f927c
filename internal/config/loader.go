package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "config/config.yaml"
	envPrefix         = "OCTAGON_EDGE"
)

// newViper returns a viper instance wired for this service's overrides:
// OCTAGON_EDGE_ prefixed environment variables with dots mapped to
// underscores, so OCTAGON_EDGE_DATABASE_HOST overrides database.host.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// readExpanded reads a YAML config file and expands ${VAR} placeholders
// before parsing, so credentials stay in the environment rather than on
// disk.
func readExpanded(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config file not found at %s: %w", path, err)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.ReadConfig(strings.NewReader(os.ExpandEnv(string(data)))); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Load reads and parses the configuration file. The file is required;
// use LoadWithDefaults when running without one is acceptable.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	if err := readExpanded(v, configPath); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// LoadWithDefaults loads configuration with defaults for the optional
// knobs. A missing file is fine; environment variables and defaults
// carry the config on their own.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("stats_source.requests_per_second", 0.5)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("features.predictions_enabled", true)
	v.SetDefault("features.common_opponents_enabled", true)

	if err := readExpanded(v, configPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// ReloadFromEnv re-reads the configuration when OCTAGON_EDGE_CONFIG_PATH
// points somewhere, leaving cfg untouched otherwise.
func ReloadFromEnv(cfg *Config) error {
	path := os.Getenv("OCTAGON_EDGE_CONFIG_PATH")
	if path == "" {
		return nil
	}

	newCfg, err := Load(path)
	if err != nil {
		return err
	}
	*cfg = *newCfg
	return nil
}
