package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBMinConns  int32  `envconfig:"ATLAS_DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"ATLAS_DB_MAX_CONNS" default:"4"`

	DataDir    string `envconfig:"ATLAS_DATA_DIR" default:"data"`
	OutputPath string `envconfig:"ATLAS_OUTPUT" default:"build/languages.json"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("ATLAS_DATA_DIR is required")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("ATLAS_OUTPUT is required")
	}
	if c.DBMinConns < 0 {
		return fmt.Errorf("ATLAS_DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("ATLAS_DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("ATLAS_DB_MIN_CONNS (%d) cannot exceed ATLAS_DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}

// RequireDatabaseURL guards the commands that need Postgres; most of the
// pipeline runs without one.
func (c *Config) RequireDatabaseURL() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required for this command")
	}
	return nil
}

// CountryCodesPath locates the country reference table under DataDir.
func (c *Config) CountryCodesPath() string {
	return filepath.Join(c.DataDir, "country_code.json")
}

// LanguageCodesPath locates the language reference table under DataDir.
func (c *Config) LanguageCodesPath() string {
	return filepath.Join(c.DataDir, "language_code.json")
}

// DatasetPath locates the almanac country dataset under DataDir.
func (c *Config) DatasetPath() string {
	return filepath.Join(c.DataDir, "countries_data.json")
}
