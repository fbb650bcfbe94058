package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBase        = "https://api.cloudflare.com/client/v4"
	DefaultHardLimit      = 10_000_000
	DefaultResizeTarget   = 3_000_000
	DefaultTimeoutSeconds = 30

	EnvAccountID = "SHOT_ACCOUNT_ID"
	EnvToken     = "SHOT_TOKEN"
)

// ErrNoCredentials is returned when neither the config file nor the
// environment provide an account id and token.
var ErrNoCredentials = errors.New("authentication info is not configured yet")

// Auth is the Cloudflare account id + API token pair
type Auth struct {
	AccountID string `yaml:"account_id"`
	Token     string `yaml:"token"`
}

type Config struct {
	Auth Auth `yaml:"auth"`

	// API Settings
	APIBase        string `yaml:"api_base"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	// Size Limits (bytes)
	// Cloudflare Images rejects uploads above 10 MB. Oversized images are
	// shrunk once, aiming for resize_target.
	HardLimit    int `yaml:"hard_limit"`
	ResizeTarget int `yaml:"resize_target"`

	// UI Settings
	CopyFormat string `yaml:"copy_format"`
	ColorTheme string `yaml:"color_theme"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		APIBase:        DefaultAPIBase,
		TimeoutSeconds: DefaultTimeoutSeconds,
		HardLimit:      DefaultHardLimit,
		ResizeTarget:   DefaultResizeTarget,
		CopyFormat:     "none",
		ColorTheme:     "auto",
	}
}

// Load reads configuration from the specified file path, then applies
// environment overrides (including a .env file in the working directory).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAccountID); v != "" {
		c.Auth.AccountID = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.Auth.Token = v
	}
}

func (c *Config) applyDefaults() {
	if c.APIBase == "" {
		c.APIBase = DefaultAPIBase
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.HardLimit <= 0 {
		c.HardLimit = DefaultHardLimit
	}
	if c.ResizeTarget <= 0 {
		c.ResizeTarget = DefaultResizeTarget
	}
	if !IsValidCopyFormat(c.CopyFormat) {
		c.CopyFormat = "none"
	}
	if c.ColorTheme == "" {
		c.ColorTheme = "auto"
	}
}

// Timeout returns the HTTP timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HasAuth reports whether both halves of the auth pair are present
func (c *Config) HasAuth() bool {
	return c.Auth.AccountID != "" && c.Auth.Token != ""
}

// RequireAuth returns ErrNoCredentials wrapped with remediation hints
// pointing at path when the auth pair is incomplete.
func (c *Config) RequireAuth(path string) error {
	if c.HasAuth() {
		return nil
	}
	return fmt.Errorf("%w: use `shot auth <account_id> <token>`, set %s/%s, or edit %s",
		ErrNoCredentials, EnvAccountID, EnvToken, path)
}

// Save persists the current configuration to the specified file path.
// The file holds an API token, so it is written owner-only.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsValidCopyFormat checks if the clipboard copy format is known
func IsValidCopyFormat(format string) bool {
	validFormats := []string{"none", "url", "markdown", "html"}
	for _, valid := range validFormats {
		if format == valid {
			return true
		}
	}
	return false
}
