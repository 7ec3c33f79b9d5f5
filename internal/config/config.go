package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kk-code-lab/regexfu/internal/match"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for regexfu
type Config struct {
	// Matching
	Engine       string        `yaml:"engine" env:"REGEXFU_ENGINE"`
	Flags        string        `yaml:"flags" env:"REGEXFU_FLAGS"`
	MatchTimeout time.Duration `yaml:"match_timeout" env:"REGEXFU_MATCH_TIMEOUT"`

	// Logging
	LogFile  string `yaml:"log_file" env:"REGEXFU_LOG_FILE"`
	LogLevel string `yaml:"log_level" env:"REGEXFU_LOG_LEVEL"`

	// Display
	TabWidth int         `yaml:"tab_width"`
	Colors   ColorConfig `yaml:"colors"`

	// Reload the subject file when it changes on disk
	WatchSubject bool `yaml:"watch_subject" env:"REGEXFU_WATCH"`
}

// ColorConfig names highlight colours using tcell colour names or #rrggbb.
type ColorConfig struct {
	Matches []string `yaml:"matches"`
	Brace   string   `yaml:"brace"`
	Error   string   `yaml:"error"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Engine:   match.EngineRegexp2,
		LogLevel: "info",
		TabWidth: 4,
		Colors: ColorConfig{
			Matches: []string{"yellow", "aqua", "fuchsia"},
			Brace:   "lime",
			Error:   "red",
		},
	}
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFrom loads configuration from path (if it exists) and environment.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if path := os.Getenv("REGEXFU_CONFIG"); path != "" {
		return path
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "regexfu", "config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "regexfu", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - path comes from the user's own flag, env var or config dir
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if engine := os.Getenv("REGEXFU_ENGINE"); engine != "" {
		cfg.Engine = engine
	}

	if flags, ok := os.LookupEnv("REGEXFU_FLAGS"); ok {
		cfg.Flags = flags
	}

	if timeout := os.Getenv("REGEXFU_MATCH_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid REGEXFU_MATCH_TIMEOUT: %w", err)
		}
		cfg.MatchTimeout = d
	}

	if logFile := os.Getenv("REGEXFU_LOG_FILE"); logFile != "" {
		cfg.LogFile = logFile
	}

	if level := os.Getenv("REGEXFU_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if watch := os.Getenv("REGEXFU_WATCH"); watch != "" {
		switch watch {
		case "true", "1", "yes":
			cfg.WatchSubject = true
		case "false", "0", "no":
			cfg.WatchSubject = false
		default:
			return fmt.Errorf("invalid REGEXFU_WATCH value: %q (use true/false)", watch)
		}
	}

	return nil
}

// Validate checks the configuration for values the application cannot use.
func Validate(cfg *Config) error {
	if _, err := match.NewEngine(cfg.Engine, match.Options{}); err != nil {
		return err
	}

	if _, err := match.ParseFlags(cfg.Flags); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	if cfg.MatchTimeout < 0 {
		return fmt.Errorf("match_timeout must be non-negative")
	}

	if cfg.TabWidth < 1 || cfg.TabWidth > 16 {
		return fmt.Errorf("tab_width must be between 1 and 16")
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level %q is not one of trace, debug, info, warn, error", cfg.LogLevel)
	}

	if len(cfg.Colors.Matches) == 0 {
		return fmt.Errorf("colors.matches must name at least one colour")
	}

	return nil
}

// InitialFlags parses the configured modifier letters.
func (c *Config) InitialFlags() match.Flags {
	flags, err := match.ParseFlags(c.Flags)
	if err != nil {
		return 0
	}
	return flags
}

// EngineOptions returns the options for match.NewEngine.
func (c *Config) EngineOptions() match.Options {
	return match.Options{MatchTimeout: c.MatchTimeout}
}
