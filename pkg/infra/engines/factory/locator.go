package factory

import (
	"fmt"

	"github.com/codemend/codemend/pkg/infra/engines"
	"github.com/codemend/codemend/pkg/infra/engines/anthropic"
	"github.com/codemend/codemend/pkg/infra/engines/bedrock"
	"github.com/codemend/codemend/pkg/infra/engines/gemini"
	"github.com/codemend/codemend/pkg/infra/engines/openai"
)

// EngineLocator resolves a provider name to a backend client.
type EngineLocator interface {
	Get(provider string) (engines.Client, error)
}

type engineLocator struct{}

func NewEngineLocator() EngineLocator {
	return &engineLocator{}
}

func (f *engineLocator) Get(provider string) (engines.Client, error) {
	switch provider {
	case engines.ProviderOpenAI:
		return openai.NewOpenaiClient(), nil
	case engines.ProviderAnthropic:
		return anthropic.NewAnthropicClient(), nil
	case engines.ProviderGemini:
		return gemini.NewGeminiClient(), nil
	case engines.ProviderBedrock:
		return bedrock.NewBedrockClient(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
