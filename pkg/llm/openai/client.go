// Package openai backs llm.ChatModel with the OpenAI chat API through langchaingo.
package openai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"github.com/VaibhavKawatra/copy-job-tracker/pkg/llm"
)

const DefaultModel = "gpt-3.5-turbo"

type Client struct {
	model llms.Model
	name  string
}

// New builds a client for the given key and model. baseURL may be empty.
func New(apiKey, model, baseURL string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	opts := []lcopenai.Option{
		lcopenai.WithToken(apiKey),
		lcopenai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, lcopenai.WithBaseURL(baseURL))
	}
	m, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}
	return NewWithModel(m, model), nil
}

// NewWithModel wraps an existing langchaingo model.
func NewWithModel(m llms.Model, name string) *Client {
	return &Client{model: m, name: name}
}

// Ask requests a JSON-mode completion for one system and one user message.
func (c *Client) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}, llms.WithJSONMode(), llms.WithTemperature(0.2))
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", llm.ErrNoChoices
	}
	return resp.Choices[0].Content, nil
}

func (c *Client) Name() string { return c.name }
