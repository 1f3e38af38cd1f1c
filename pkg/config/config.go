// Package config loads the askgemini YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rafael-ulguim1/askgemini/pkg/generation"
	"gopkg.in/yaml.v3"
)

// Fallback values applied when the config file omits them.
const (
	defaultTimeout    = "2m"
	defaultMaxRetries = 3
	defaultBaseDelay  = "1s"
)

// RetryConfig controls transient-failure retry behaviour.
type RetryConfig struct {
	MaxRetries int    `yaml:"max_retries"` // Max retries on transient failures (default 3).
	BaseDelay  string `yaml:"base_delay"`  // Initial backoff delay as a duration string (e.g. "1s", "500ms").
}

// BaseDelayDuration parses BaseDelay, falling back to the default on an
// empty or unparseable value. Validate reports unparseable values as
// errors; this accessor just never returns zero.
func (r RetryConfig) BaseDelayDuration() time.Duration {
	d, err := time.ParseDuration(r.BaseDelay)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultBaseDelay)
	}

	return d
}

// Config is the top-level CLI configuration.
type Config struct {
	APIKey            string      `yaml:"api_key"` //nolint:gosec // configuration field, not a hardcoded secret
	Model             string      `yaml:"model"`
	Temperature       float64     `yaml:"temperature"`
	MaxOutputTokens   int         `yaml:"max_output_tokens"`
	TopP              float64     `yaml:"top_p"`
	TopK              int         `yaml:"top_k"`
	SystemInstruction string      `yaml:"system_instruction"`
	BaseURL           string      `yaml:"base_url"` // Empty means the production Gemini endpoint.
	Timeout           string      `yaml:"timeout"`  // Per-request bound as a duration string.
	Retry             RetryConfig `yaml:"retry"`
}

// Default returns a Config populated with the stock generation
// parameters and conservative network bounds.
func Default() Config {
	return Config{
		Model:           generation.DefaultModel,
		Temperature:     generation.DefaultTemperature,
		MaxOutputTokens: generation.DefaultMaxOutputTokens,
		TopP:            generation.DefaultTopP,
		TopK:            generation.DefaultTopK,
		Timeout:         defaultTimeout,
		Retry: RetryConfig{
			MaxRetries: defaultMaxRetries,
			BaseDelay:  defaultBaseDelay,
		},
	}
}

// Load reads a YAML config file. Environment variables referenced as
// ${VAR} or $VAR in the YAML are expanded before parsing, so the API key
// can be kept in the environment (e.g. loaded from a .env file) rather
// than committed in the config. A missing file returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("config: model is required")
	}

	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("config: temperature must be in [0,1], got %g", c.Temperature)
	}

	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("config: max_output_tokens must be positive, got %d", c.MaxOutputTokens)
	}

	if c.TopP < 0 || c.TopP > 1 {
		return fmt.Errorf("config: top_p must be in [0,1], got %g", c.TopP)
	}

	if c.TopK < 0 {
		return fmt.Errorf("config: top_k must not be negative, got %d", c.TopK)
	}

	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("config: timeout: %w", err)
		}
	}

	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("config: retry.max_retries must not be negative, got %d", c.Retry.MaxRetries)
	}

	if c.Retry.BaseDelay != "" {
		if _, err := time.ParseDuration(c.Retry.BaseDelay); err != nil {
			return fmt.Errorf("config: retry.base_delay: %w", err)
		}
	}

	return nil
}

// TimeoutDuration parses Timeout, falling back to the default on an
// empty or unparseable value.
func (c Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultTimeout)
	}

	return d
}

// Params maps the configured generation parameters onto a
// generation.Params value.
func (c Config) Params() generation.Params {
	return generation.Params{
		Model:             c.Model,
		Temperature:       c.Temperature,
		MaxOutputTokens:   c.MaxOutputTokens,
		TopP:              c.TopP,
		TopK:              c.TopK,
		SystemInstruction: c.SystemInstruction,
	}
}
