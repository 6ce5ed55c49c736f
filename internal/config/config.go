// Package config loads service configuration from config.toml, an optional
// config.<SUPERCLAIMS_ENV>.toml overlay, and SUPERCLAIMS_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/superclaims/internal/oracle"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvSuperclaimsEnv             = "SUPERCLAIMS_ENV"
	EnvSuperclaimsShutdownTimeout = "SUPERCLAIMS_SHUTDOWN_TIMEOUT"
	EnvSuperclaimsVersion         = "SUPERCLAIMS_VERSION"
	EnvSuperclaimsLogLevel        = "SUPERCLAIMS_LOG_LEVEL"
)

var oracleEnv = &oracle.Env{
	Provider: "SUPERCLAIMS_ORACLE_PROVIDER",
	Timeout:  "SUPERCLAIMS_ORACLE_TIMEOUT",

	AgentProviderName: "SUPERCLAIMS_AGENT_PROVIDER_NAME",
	AgentBaseURL:      "SUPERCLAIMS_AGENT_BASE_URL",
	AgentToken:        "SUPERCLAIMS_AGENT_TOKEN",
	AgentDeployment:   "SUPERCLAIMS_AGENT_DEPLOYMENT",
	AgentAPIVersion:   "SUPERCLAIMS_AGENT_API_VERSION",
	AgentAuthType:     "SUPERCLAIMS_AGENT_AUTH_TYPE",
	AgentModelName:    "SUPERCLAIMS_AGENT_MODEL_NAME",

	ClaudeAPIKey:    "SUPERCLAIMS_CLAUDE_API_KEY",
	ClaudeModel:     "SUPERCLAIMS_CLAUDE_MODEL",
	ClaudeMaxTokens: "SUPERCLAIMS_CLAUDE_MAX_TOKENS",

	GeminiAPIKey: "SUPERCLAIMS_GEMINI_API_KEY",
	GeminiModel:  "SUPERCLAIMS_GEMINI_MODEL",
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Config is the root configuration for the SuperClaims service.
type Config struct {
	Server          ServerConfig   `toml:"server"`
	API             APIConfig      `toml:"api"`
	Oracle          oracle.Config  `toml:"oracle"`
	Workflow        WorkflowConfig `toml:"workflow"`
	ShutdownTimeout string         `toml:"shutdown_timeout"`
	Version         string         `toml:"version"`
	LogLevel        string         `toml:"log_level"`
}

// Env returns the SUPERCLAIMS_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSuperclaimsEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() slog.Level {
	return logLevels[c.LogLevel]
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFile(BaseConfigFile)
}

// LoadFile is Load with an explicit base config path. The overlay is looked
// up next to path.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overlay := overlayPath(path); overlay != "" {
		loaded, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(loaded)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Oracle.Merge(&overlay.Oracle)
	c.Workflow.Merge(&overlay.Workflow)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Oracle.Finalize(oracleEnv); err != nil {
		return fmt.Errorf("oracle: %w", err)
	}
	if err := c.Workflow.Finalize(); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvSuperclaimsShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvSuperclaimsVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvSuperclaimsLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	env := os.Getenv(EnvSuperclaimsEnv)
	if env == "" {
		return ""
	}

	path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
