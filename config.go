package smartreply

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	// BaseURL is the root of the remote SmartReply API, e.g.
	// "https://smartreply-backend.example.com/api".
	BaseURL string `yaml:"base_url"`

	// TimeoutMS bounds one generation attempt in milliseconds. The
	// default is generous to tolerate backend cold starts.
	TimeoutMS int `yaml:"timeout_ms"`

	// MaxCalls is the daily call allowance.
	MaxCalls int `yaml:"max_calls"`

	// StoragePath, when set, is where the quota counter is persisted.
	StoragePath string `yaml:"storage_path"`

	// Window is the quota accumulation window. Fixed for the product;
	// overridable in tests.
	Window time.Duration `yaml:"-"`
}

// DefaultTimeoutMS is the default per-attempt deadline.
const DefaultTimeoutMS = 90000

// Timeout returns the per-attempt deadline as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return DefaultTimeoutMS * time.Millisecond
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func (c *Config) applyDefaults() {
	if c.TimeoutMS == 0 {
		c.TimeoutMS = DefaultTimeoutMS
	}
	if c.MaxCalls == 0 {
		c.MaxCalls = DefaultMaxCalls
	}
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
}

// LoadConfig reads and parses a YAML config file. Environment variables
// in the format ${VAR} are expanded before parsing.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("smartreply: read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("smartreply: parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Validate checks the config for required fields and consistency.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("smartreply: config: base_url is required")
	}
	if c.TimeoutMS < 0 {
		return fmt.Errorf("smartreply: config: timeout_ms must not be negative")
	}
	if c.MaxCalls < 0 {
		return fmt.Errorf("smartreply: config: max_calls must not be negative")
	}
	return nil
}
