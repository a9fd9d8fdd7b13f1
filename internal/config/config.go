// Package config loads ledgerline.yaml and applies LEDGERLINE_* environment
// overrides on top of it.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a ledger repo.
const FileName = "ledgerline.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LEDGERLINE"

// Config represents the top-level ledgerline.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	Reports  ReportsConfig  `yaml:"reports"`
	Logging  LoggingConfig  `yaml:"logging"`
	Git      GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name          string `yaml:"name" validate:"required"`
	EntityType    string `yaml:"entity_type"`
	AccountBookID int64  `yaml:"account_book_id" validate:"min=0"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start" validate:"required,datetime=01-02"` // "MM-DD"
}

// ReportsConfig holds report defaults; command flags win over these.
type ReportsConfig struct {
	PageSize       int    `yaml:"page_size" validate:"min=1,max=1000"`
	Sort           string `yaml:"sort,omitempty"`
	CashFlowPolicy string `yaml:"cash_flow_policy" validate:"oneof=accumulate first-match"`
}

// LoggingConfig selects the logger flavour.
type LoggingConfig struct {
	Mode string `yaml:"mode" validate:"oneof=debug production"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email" validate:"omitempty,email"`
}

// EnvOverrides are read from LEDGERLINE_* variables. Unset variables leave
// the file value alone.
type EnvOverrides struct {
	LogMode        string `envconfig:"LOG_MODE"`
	PageSize       int    `envconfig:"PAGE_SIZE"`
	Sort           string `envconfig:"SORT"`
	CashFlowPolicy string `envconfig:"CASH_FLOW_POLICY"`
}

var validate = validator.New()

// Load reads a ledgerline.yaml file from disk, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overlays LEDGERLINE_* environment variables.
func (c *Config) ApplyEnv() error {
	var env EnvOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if env.LogMode != "" {
		c.Logging.Mode = env.LogMode
	}
	if env.PageSize != 0 {
		c.Reports.PageSize = env.PageSize
	}
	if env.Sort != "" {
		c.Reports.Sort = env.Sort
	}
	if env.CashFlowPolicy != "" {
		c.Reports.CashFlowPolicy = env.CashFlowPolicy
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(businessName, entityType string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:          businessName,
			EntityType:    entityType,
			AccountBookID: 1,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Reports: ReportsConfig{
			PageSize:       50,
			CashFlowPolicy: "accumulate",
		},
		Logging: LoggingConfig{
			Mode: "production",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Ledgerline",
			AuthorEmail: "ledger@ledgerline.dev",
		},
	}
}
