// Package config loads apicov configuration from .apicov/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete apicov configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Compare CompareConfig `json:"compare" mapstructure:"compare"`
	Store   StoreConfig   `json:"store" mapstructure:"store"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// CompareConfig contains comparison defaults
type CompareConfig struct {
	ReferenceTypes   string `json:"referenceTypes" mapstructure:"referenceTypes"`
	PolyfillTypes    string `json:"polyfillTypes" mapstructure:"polyfillTypes"`
	StrictSignatures bool   `json:"strictSignatures" mapstructure:"strictSignatures"`
}

// StoreConfig contains run-history store configuration
type StoreConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Compare: CompareConfig{
			ReferenceTypes:   "types",
			PolyfillTypes:    "dist/index.d.ts",
			StrictSignatures: false,
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    ".apicov/apicov.db",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.apicov/config.json.
// A missing config file yields the defaults.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("compare.strictSignatures", false)
	v.SetDefault("store.enabled", true)
	v.SetDefault("store.path", ".apicov/apicov.db")
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".apicov"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to <root>/.apicov/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".apicov")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}
