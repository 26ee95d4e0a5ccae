package engines

import (
	"context"
	"errors"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderBedrock   = "bedrock"
)

// ErrNoCredentials marks an engine that is configured but has no usable
// credentials. The orchestrator treats it as "engine unavailable" and skips
// straight to the deterministic rewriter.
var ErrNoCredentials = errors.New("engine credentials not configured")

// Config carries everything an engine needs for a single completion call.
// Model, token ceiling and temperature are fixed per engine; temperature
// zero is deliberate so the generative path stays as deterministic as the
// provider allows.
type Config struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	Region      string  `mapstructure:"region"`
	Provider    string  `mapstructure:"provider"`
}

// Available reports credential presence only. Credential storage and
// retrieval belong to the deployment environment.
func (c *Config) Available() bool {
	if c == nil {
		return false
	}
	if c.Provider == ProviderBedrock {
		return c.Region != ""
	}
	return c.APIKey != ""
}

type CompletionResponse struct {
	ID       string `json:"id"`
	Model    string `json:"model"`
	Response string `json:"response"`
	Usage    Usage  `json:"usage"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Client is the boundary to one generative backend.
type Client interface {
	Ask(ctx context.Context, config *Config, system, prompt string) (*CompletionResponse, error)
}
