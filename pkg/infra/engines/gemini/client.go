package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codemend/codemend/pkg/infra/engines"
	"google.golang.org/genai"
)

type client struct{}

func NewGeminiClient() engines.Client {
	return &client{}
}

func (c *client) Ask(
	ctx context.Context,
	config *engines.Config,
	system string,
	prompt string,
) (*engines.CompletionResponse, error) {
	if config.APIKey == "" {
		return nil, engines.ErrNoCredentials
	}

	model := config.Model
	if model == "" {
		model = "gemini-pro"
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{}
	if system != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
			Role:  "system",
		}
	}
	if config.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(config.MaxTokens)
	}

	result, err := genaiClient.Models.GenerateContent(
		ctx,
		model,
		genai.Text(prompt),
		genConfig,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	responseText := result.Text()
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return nil, fmt.Errorf("no completions returned")
	}

	resp := &engines.CompletionResponse{
		ID:       fmt.Sprintf("gemini-%d", time.Now().UnixNano()),
		Model:    model,
		Response: responseText,
	}
	if result.UsageMetadata != nil {
		resp.Usage = engines.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}
