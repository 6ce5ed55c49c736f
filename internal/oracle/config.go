package oracle

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Supported oracle providers.
const (
	ProviderAgent  = "agent"
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
)

// Config selects and configures the oracle provider.
// Only the section matching Provider is validated.
type Config struct {
	Provider string               `toml:"provider" validate:"oneof=agent claude gemini"`
	Timeout  string               `toml:"timeout" validate:"required"`
	Agent    gaconfig.AgentConfig `toml:"agent" validate:"-"`
	Claude   ClaudeConfig         `toml:"claude" validate:"-"`
	Gemini   GeminiConfig         `toml:"gemini" validate:"-"`
}

// ClaudeConfig holds Anthropic Messages API settings.
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key" validate:"required"`
	Model       string  `toml:"model" validate:"required"`
	MaxTokens   int     `toml:"max_tokens" validate:"gt=0"`
	Temperature float64 `toml:"temperature" validate:"gte=0,lte=1"`
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	APIKey      string  `toml:"api_key" validate:"required"`
	Model       string  `toml:"model" validate:"required"`
	Temperature float32 `toml:"temperature" validate:"gte=0,lte=2"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider string
	Timeout  string

	AgentProviderName string
	AgentBaseURL      string
	AgentToken        string
	AgentDeployment   string
	AgentAPIVersion   string
	AgentAuthType     string
	AgentModelName    string

	ClaudeAPIKey    string
	ClaudeModel     string
	ClaudeMaxTokens string

	GeminiAPIKey string
	GeminiModel  string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}

	c.Agent.Merge(&overlay.Agent)

	if overlay.Claude.APIKey != "" {
		c.Claude.APIKey = overlay.Claude.APIKey
	}
	if overlay.Claude.Model != "" {
		c.Claude.Model = overlay.Claude.Model
	}
	if overlay.Claude.MaxTokens != 0 {
		c.Claude.MaxTokens = overlay.Claude.MaxTokens
	}
	if overlay.Claude.Temperature != 0 {
		c.Claude.Temperature = overlay.Claude.Temperature
	}

	if overlay.Gemini.APIKey != "" {
		c.Gemini.APIKey = overlay.Gemini.APIKey
	}
	if overlay.Gemini.Model != "" {
		c.Gemini.Model = overlay.Gemini.Model
	}
	if overlay.Gemini.Temperature != 0 {
		c.Gemini.Temperature = overlay.Gemini.Temperature
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderAgent
	}
	if c.Timeout == "" {
		c.Timeout = "2m"
	}

	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(&c.Agent)
	c.Agent = defaults

	if c.Claude.Model == "" {
		c.Claude.Model = "claude-sonnet-4-20250514"
	}
	if c.Claude.MaxTokens == 0 {
		c.Claude.MaxTokens = 4096
	}
	if c.Claude.Temperature == 0 {
		c.Claude.Temperature = 0.7
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.7
	}
}

func (c *Config) loadEnv(env *Env) {
	setString := func(envVar string, target *string) {
		if v := lookup(envVar); v != "" {
			*target = v
		}
	}

	setString(env.Provider, &c.Provider)
	setString(env.Timeout, &c.Timeout)

	c.loadAgentEnv(env)

	setString(env.ClaudeAPIKey, &c.Claude.APIKey)
	setString(env.ClaudeModel, &c.Claude.Model)
	if v := lookup(env.ClaudeMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Claude.MaxTokens = n
		}
	}

	setString(env.GeminiAPIKey, &c.Gemini.APIKey)
	setString(env.GeminiModel, &c.Gemini.Model)
}

func (c *Config) loadAgentEnv(env *Env) {
	if c.Agent.Provider == nil {
		c.Agent.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Agent.Provider.Options == nil {
		c.Agent.Provider.Options = make(map[string]any)
	}
	if c.Agent.Model == nil {
		c.Agent.Model = &gaconfig.ModelConfig{}
	}

	if v := lookup(env.AgentProviderName); v != "" {
		c.Agent.Provider.Name = v
	}
	if v := lookup(env.AgentBaseURL); v != "" {
		c.Agent.Provider.BaseURL = v
	}
	if v := lookup(env.AgentModelName); v != "" {
		c.Agent.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := lookup(envVar); v != "" {
			c.Agent.Provider.Options[key] = v
		}
	}

	setOption(env.AgentToken, "token")
	setOption(env.AgentDeployment, "deployment")
	setOption(env.AgentAPIVersion, "api_version")
	setOption(env.AgentAuthType, "auth_type")
}

func (c *Config) validate() error {
	v := validator.New()

	if err := v.Struct(c); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	switch c.Provider {
	case ProviderClaude:
		if err := v.Struct(&c.Claude); err != nil {
			return fmt.Errorf("claude: %w", err)
		}
	case ProviderGemini:
		if err := v.Struct(&c.Gemini); err != nil {
			return fmt.Errorf("gemini: %w", err)
		}
	default:
		if err := validateAgent(&c.Agent); err != nil {
			return fmt.Errorf("agent: %w", err)
		}
	}

	return nil
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil || c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}

func lookup(envVar string) string {
	if envVar == "" {
		return ""
	}
	return os.Getenv(envVar)
}
