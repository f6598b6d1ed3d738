// Package openai adapts the OpenAI Chat Completions API to the scoring and
// assistant ports.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

const defaultModel = openai.GPT4o

// Config holds the provider settings.
type Config struct {
	APIKey             string
	BaseURL            string // empty = api.openai.com
	Model              string
	ScoringTemperature float32
	ChatTemperature    float32
	ChatMaxTokens      int
}

// Client performs one chat completion per call. It never retries.
type Client struct {
	api *openai.Client
	cfg Config
}

var (
	_ ports.ScoringClient = (*Client)(nil)
	_ ports.ChatClient    = (*Client)(nil)
)

func NewClient(cfg Config) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &Client{api: openai.NewClientWithConfig(oc), cfg: cfg}
}

// Score asks the model for a JSON object describing the product's potential.
// The reply is returned as received once it is known to be a JSON object.
func (c *Client) Score(ctx context.Context, req ports.ScoringRequest) (json.RawMessage, error) {
	content, err := c.complete(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: scoringSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: scoringUserPrompt(req.ProductName, req.Category)},
		},
		Temperature: c.cfg.ScoringTemperature,
	})
	if err != nil {
		return nil, err
	}

	raw := json.RawMessage(strings.TrimSpace(content))
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: reply is not a JSON object: %v", domain.ErrProviderFailure, err)
	}
	return raw, nil
}

// Chat answers a free-text assistant message in Turkish.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	return c.complete(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		Temperature: c.cfg.ChatTemperature,
		MaxTokens:   c.cfg.ChatMaxTokens,
	})
}

func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: openai status %d: %s", domain.ErrProviderFailure, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("%w: %w", domain.ErrProviderFailure, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", domain.ErrProviderFailure)
	}
	return resp.Choices[0].Message.Content, nil
}
