// Package config loads civiclink configuration from defaults, a YAML
// file, a .env file, the environment and command-line overrides, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/civiclink/civiclink/internal/llm"
)

// Config is the complete civiclink configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty means the default under
	// the data directory.
	DBPath string `yaml:"db_path"`

	// Region overrides the persisted region selection for this run.
	Region string `yaml:"region"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// WebSearch grounds chat replies on a web search.
	WebSearch *bool `yaml:"web_search"`

	LLM llm.Config `yaml:"llm"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		WebSearch: boolPtr(true),
		LLM:       llm.DefaultConfig(),
	}
}

// DefaultPath returns the config file location, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "civiclink", "config.yaml"), nil
}

// Options controls Load.
type Options struct {
	// Path is an explicit config file. It must exist when set. When empty
	// DefaultPath is used if the file is present.
	Path string

	// EnvFile is the dotenv file to read. Defaults to ".env"; a missing
	// file is not an error.
	EnvFile string

	// Getenv reads the environment. Defaults to os.Getenv.
	Getenv func(string) string
}

// Load builds the configuration from every source except command-line
// flags, which callers apply with Merge.
func Load(opts Options) (*Config, error) {
	cfg := DefaultConfig()

	fileCfg, err := loadFile(opts.Path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(fileCfg)

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.ApplyEnv(getenv)

	if !cfg.LLM.HasKey() {
		if found, ok := llm.DiscoverConfigFrom(getenv); ok {
			cfg.LLM.Provider = found.Provider
			cfg.LLM.Anthropic.APIKey = found.Anthropic.APIKey
			cfg.LLM.OpenAI.APIKey = found.OpenAI.APIKey
			cfg.LLM.Gemini.APIKey = found.Gemini.APIKey
			cfg.LLM.OpenRouter.APIKey = found.OpenRouter.APIKey
		}
	}

	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, nil
		}
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads a YAML config file. Fields missing from the file are
// left zero so the result can be merged over defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveToFile writes the configuration as YAML, creating parent
// directories. API keys are written as-is.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from CIVICLINK_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(llm.EnvPrefix + "DB"); v != "" {
		c.DBPath = v
	}
	if v := getenv(llm.EnvPrefix + "REGION"); v != "" {
		c.Region = v
	}
	if v := getenv(llm.EnvPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv(llm.EnvPrefix + "WEB_SEARCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.WebSearch = boolPtr(b)
		}
	}
	c.LLM.ApplyEnv(getenv)
}

// Merge merges other into c. Non-zero fields of other take precedence.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.DBPath != "" {
		c.DBPath = other.DBPath
	}
	if other.Region != "" {
		c.Region = other.Region
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.WebSearch != nil {
		c.WebSearch = boolPtr(*other.WebSearch)
	}

	mergeLLM(&c.LLM, other.LLM)
}

func mergeLLM(dst *llm.Config, src llm.Config) {
	setString := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}

	setString(&dst.Provider, src.Provider)

	setString(&dst.Anthropic.APIKey, src.Anthropic.APIKey)
	setString(&dst.Anthropic.Model, src.Anthropic.Model)

	setString(&dst.OpenAI.APIKey, src.OpenAI.APIKey)
	setString(&dst.OpenAI.Model, src.OpenAI.Model)
	setString(&dst.OpenAI.BaseURL, src.OpenAI.BaseURL)

	setString(&dst.Gemini.APIKey, src.Gemini.APIKey)
	setString(&dst.Gemini.Model, src.Gemini.Model)

	setString(&dst.OpenRouter.APIKey, src.OpenRouter.APIKey)
	setString(&dst.OpenRouter.Model, src.OpenRouter.Model)
	setString(&dst.OpenRouter.BaseURL, src.OpenRouter.BaseURL)

	if src.Retry.MaxAttempts != 0 {
		dst.Retry.MaxAttempts = src.Retry.MaxAttempts
	}
	if src.Retry.InitialWait != 0 {
		dst.Retry.InitialWait = src.Retry.InitialWait
	}
	if src.Retry.MaxWait != 0 {
		dst.Retry.MaxWait = src.Retry.MaxWait
	}
	if src.Retry.Multiplier != 0 {
		dst.Retry.Multiplier = src.Retry.Multiplier
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
}

// Validate checks settings that do not depend on which command runs. A
// missing API key is reported when a provider is created.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LLM.Provider {
	case "anthropic", "openai", "gemini", "openrouter", "mock":
	default:
		return fmt.Errorf("llm.provider: unknown provider %q", c.LLM.Provider)
	}
	if c.LLM.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm.retry.max_attempts must be at least 1")
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	return nil
}

// WebSearchEnabled reports the effective web search setting.
func (c *Config) WebSearchEnabled() bool {
	return c.WebSearch == nil || *c.WebSearch
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level: unknown level %q", s)
}

func boolPtr(b bool) *bool { return &b }
