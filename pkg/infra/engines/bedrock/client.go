package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/codemend/codemend/pkg/infra/engines"
)

const (
	modelPrefixAnthropicClaude = "anthropic.claude"
	modelPrefixAmazonTitan     = "amazon.titan"

	anthropicVersion = "bedrock-2023-05-31"
)

type request struct {
	AnthropicVersion string                   `json:"anthropic_version,omitempty"`
	Messages         []map[string]interface{} `json:"messages,omitempty"`
	System           string                   `json:"system,omitempty"`
	MaxTokens        int                      `json:"max_tokens,omitempty"`
	Temperature      float64                  `json:"temperature,omitempty"`

	InputText            string                 `json:"inputText,omitempty"`
	TextGenerationConfig map[string]interface{} `json:"textGenerationConfig,omitempty"`
}

type response struct {
	Content    []map[string]interface{} `json:"content,omitempty"`
	Results    []map[string]interface{} `json:"results,omitempty"`
	OutputText string                   `json:"outputText,omitempty"`
}

type client struct {
	clientPool *sync.Map
}

func NewBedrockClient() engines.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

func (c *client) Ask(
	ctx context.Context,
	config *engines.Config,
	system string,
	prompt string,
) (*engines.CompletionResponse, error) {
	if config.Region == "" {
		return nil, engines.ErrNoCredentials
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	bedrockCl, err := c.getOrCreateClient(ctx, config.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}

	body, err := json.Marshal(c.prepareRequest(config, system, prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := bedrockCl.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(config.Model),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke model: %w", err)
	}

	responseText, err := c.parseResponse(config.Model, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &engines.CompletionResponse{
		ID:       fmt.Sprintf("bedrock-%d", time.Now().UnixNano()),
		Model:    config.Model,
		Response: responseText,
	}, nil
}

func (c *client) prepareRequest(config *engines.Config, system, prompt string) *request {
	if strings.HasPrefix(config.Model, modelPrefixAmazonTitan) {
		text := prompt
		if system != "" {
			text = system + "\n\n" + prompt
		}
		return &request{
			InputText: text,
			TextGenerationConfig: map[string]interface{}{
				"maxTokenCount": config.MaxTokens,
				"temperature":   config.Temperature,
			},
		}
	}

	return &request{
		AnthropicVersion: anthropicVersion,
		System:           system,
		Messages: []map[string]interface{}{
			{"role": "user", "content": prompt},
		},
		MaxTokens:   config.MaxTokens,
		Temperature: config.Temperature,
	}
}

func (c *client) parseResponse(model string, body []byte) (string, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if strings.HasPrefix(model, modelPrefixAnthropicClaude) {
		for _, block := range resp.Content {
			if text, ok := block["text"].(string); ok && text != "" {
				return text, nil
			}
		}
		return "", fmt.Errorf("no text content returned")
	}

	if resp.OutputText != "" {
		return resp.OutputText, nil
	}
	for _, result := range resp.Results {
		if text, ok := result["outputText"].(string); ok && text != "" {
			return text, nil
		}
	}
	return "", fmt.Errorf("no completions returned")
}

func (c *client) getOrCreateClient(ctx context.Context, region string) (*bedrockruntime.Client, error) {
	if v, ok := c.clientPool.Load(region); ok {
		if cached, ok := v.(*bedrockruntime.Client); ok {
			return cached, nil
		}
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	cl := bedrockruntime.NewFromConfig(cfg)
	c.clientPool.Store(region, cl)
	return cl, nil
}
