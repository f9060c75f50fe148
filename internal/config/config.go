package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/younsl/initcost/internal/models"
	"github.com/younsl/initcost/pkg/pricing"
	"gopkg.in/yaml.v3"
)

// Defaults applied before the config file and flags
const (
	DefaultDays        = 30
	DefaultOutfile     = "lambda_init_costs_filtered.csv"
	DefaultConcurrency = 1
)

// Config holds initcost configuration loaded from .initcost.yaml.
type Config struct {
	Region           string `yaml:"region"`
	Days             int    `yaml:"days"`
	Outfile          string `yaml:"outfile"`
	PricePerGBSecond string `yaml:"price_per_gb_second"`
	LogGroupPrefix   string `yaml:"log_group_prefix"`
	Concurrency      int    `yaml:"concurrency"`
	MaxRetries       int    `yaml:"max_retries"`
	Timeout          string `yaml:"timeout"`
	MaxEvents        int    `yaml:"max_events"`
	PricingAPI       bool   `yaml:"pricing_api"`
	Invocations      bool   `yaml:"invocations"`
}

// Default returns the configuration used when no file or flag overrides a field.
func Default() Config {
	return Config{
		Days:           DefaultDays,
		Outfile:        DefaultOutfile,
		LogGroupPrefix: models.DefaultLogGroupPrefix,
		Concurrency:    DefaultConcurrency,
	}
}

// Load searches for .initcost.yaml or .initcost.yml in the given directory
// and overlays it on the defaults. Returns Default() if no file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".initcost.yaml"),
		filepath.Join(dir, ".initcost.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		cfg := Default()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Default(), nil
}

// TimeoutDuration parses the per-call timeout. An empty string disables it.
func (c Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	return d, nil
}

// Price returns the configured price per GB-second and whether it came from the user.
func (c Config) Price() (decimal.Decimal, pricing.PricingSource, error) {
	if c.PricePerGBSecond == "" {
		return pricing.DefaultPricePerGBSecond(), pricing.PricingSourceDefault, nil
	}
	price, err := decimal.NewFromString(c.PricePerGBSecond)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("invalid price_per_gb_second %q: %w", c.PricePerGBSecond, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, "", fmt.Errorf("price_per_gb_second must be positive, got %s", price)
	}
	return price, pricing.PricingSourceConfig, nil
}

// Settings holds the typed values parsed from a Config.
type Settings struct {
	CallTimeout time.Duration
	Price       decimal.Decimal
	PriceSource pricing.PricingSource
}

// Settings validates the configuration and returns its parsed values.
func (c Config) Settings() (Settings, error) {
	if err := c.Validate(); err != nil {
		return Settings{}, err
	}
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return Settings{}, err
	}
	price, source, err := c.Price()
	if err != nil {
		return Settings{}, err
	}
	return Settings{CallTimeout: timeout, Price: price, PriceSource: source}, nil
}

// Validate checks every field and returns all problems found.
func (c Config) Validate() error {
	var errs []error
	if c.Days < 1 {
		errs = append(errs, fmt.Errorf("days must be at least 1, got %d", c.Days))
	}
	if c.Outfile == "" {
		errs = append(errs, errors.New("outfile must not be empty"))
	}
	if c.LogGroupPrefix == "" {
		errs = append(errs, errors.New("log_group_prefix must not be empty"))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries))
	}
	if c.MaxEvents < 0 {
		errs = append(errs, fmt.Errorf("max_events must not be negative, got %d", c.MaxEvents))
	}
	if _, err := c.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if _, _, err := c.Price(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
