// Package config loads the tool configuration. Precedence, lowest to
// highest: built-in defaults, an optional TOML file, environment variables.
// An optional .env file is loaded into the environment first so that
// credentials can live next to the binary instead of the shell profile.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	apperrors "unity-handler-report/errors"
)

// Environment variable names understood by Load.
const (
	EnvBaseURL  = "CISCO_UNITY_BASE_URL"
	EnvUsername = "CISCO_UNITY_USERNAME"
	EnvPassword = "CISCO_UNITY_PASSWORD"
	EnvOutput   = "CISCO_UNITY_OUTPUT"
	EnvTimeout  = "CISCO_UNITY_TIMEOUT_SECONDS"
	EnvInsecure = "CISCO_UNITY_INSECURE_SKIP_VERIFY"
)

// Config carries everything the pipeline needs. It is constructed once in
// main and passed explicitly; no package keeps configuration state.
type Config struct {
	BaseURL            string        `toml:"base_url"`
	Username           string        `toml:"username"`
	Password           string        `toml:"password"`
	OutputPath         string        `toml:"output_path"`
	Timeout            time.Duration `toml:"-"`
	TimeoutSeconds     int           `toml:"timeout_seconds"`
	InsecureSkipVerify bool          `toml:"insecure_skip_verify"`
}

// Default returns the built-in configuration baseline.
func Default() *Config {
	return &Config{
		OutputPath:     "call_handlers_and_schedules.csv",
		TimeoutSeconds: 30,
	}
}

// Load builds the effective configuration. envFile and tomlFile may be empty,
// in which case that layer is skipped; a named-but-missing file is an error.
// Missing credentials after all layers merge are a fatal ConfigError.
func Load(envFile, tomlFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, &apperrors.ConfigError{Field: "env_file", Err: err}
		}
	}

	cfg := Default()

	if tomlFile != "" {
		data, err := os.ReadFile(tomlFile)
		if err != nil {
			return nil, &apperrors.ConfigError{Field: "config_file", Err: err}
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, &apperrors.ConfigError{Field: "config_file", Err: err}
		}
	}

	// Environment overrides win over the file.
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvUsername); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, &apperrors.ConfigError{
				Field: EnvTimeout,
				Err:   fmt.Errorf("want a positive integer, got %q", v),
			}
		}
		cfg.TimeoutSeconds = secs
	}
	if v := os.Getenv(EnvInsecure); v != "" {
		cfg.InsecureSkipVerify = strings.EqualFold(v, "true") || v == "1"
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the credential triple. Called by Load; exported so main
// can re-check after applying flag overrides.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return &apperrors.ConfigError{Field: EnvBaseURL, Err: apperrors.ErrMissingBaseURL}
	}
	if c.Username == "" {
		return &apperrors.ConfigError{Field: EnvUsername, Err: apperrors.ErrMissingUsername}
	}
	if c.Password == "" {
		return &apperrors.ConfigError{Field: EnvPassword, Err: apperrors.ErrMissingPassword}
	}
	return nil
}
