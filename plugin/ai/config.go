package ai

import (
	"errors"

	"github.com/hrygo/chatrelay/internal/profile"
)

// Completion defaults of the relay.
const (
	DefaultProvider    = "openai"
	DefaultModel       = "gpt-3.5-turbo"
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7
)

// ErrMissingAPIKey is returned by LLMConfig.Validate when no credential is configured.
var ErrMissingAPIKey = errors.New("completion API key is not configured")

// LLMConfig represents LLM configuration.
type LLMConfig struct {
	Provider    string // openai
	Model       string // gpt-3.5-turbo
	APIKey      string
	BaseURL     string
	MaxTokens   int     // default: 500
	Temperature float32 // default: 0.7
}

// NewLLMConfigFromProfile creates the completion config from profile.
func NewLLMConfigFromProfile(p *profile.Profile) *LLMConfig {
	cfg := &LLMConfig{
		Provider:    DefaultProvider,
		Model:       p.ChatModel,
		APIKey:      p.OpenAIAPIKey,
		BaseURL:     p.OpenAIBaseURL,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}

// Validate validates the configuration.
func (c *LLMConfig) Validate() error {
	if c == nil || c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
