// Package openai implements llm.Provider against any endpoint speaking the
// OpenAI chat completions protocol.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/contentforge/content-forge/internal/llm"
	openailib "github.com/sashabaranov/go-openai"
)

// Client implements llm.Provider using the OpenAI-compatible protocol.
// Each call is single-shot: backoff and retry budgets live with the callers
// in the retry package, not here.
type Client struct {
	client *openailib.Client
	config *Config
}

// GetConfig returns the client's configuration.
func (c *Client) GetConfig() *Config {
	return c.config
}

// NewClient creates a new OpenAI-compatible client.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	clientConfig := openailib.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.HTTPTimeout > 0 {
		clientConfig.HTTPClient = &http.Client{
			Timeout: time.Duration(config.HTTPTimeout) * time.Second,
		}
	}

	return &Client{
		client: openailib.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// NewClientFromEnv creates a client using environment variables.
func NewClientFromEnv() (*Client, error) {
	config, err := NewConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return NewClient(config)
}

// CallLLM sends messages to the generation service and returns the response.
// Any transport failure or empty response comes back as *llm.ServiceError.
func (c *Client) CallLLM(ctx context.Context, messages []llm.Message) (llm.Message, error) {
	if len(messages) == 0 {
		return llm.Message{}, &llm.ServiceError{Op: "chat", Err: fmt.Errorf("no messages to send")}
	}

	openaiMsgs := make([]openailib.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		openaiMsgs[i] = openailib.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	req := openailib.ChatCompletionRequest{
		Model:    c.config.Model,
		Messages: openaiMsgs,
	}
	if c.config.Temperature != nil {
		req.Temperature = *c.config.Temperature
	}
	if c.config.MaxTokens > 0 {
		req.MaxTokens = c.config.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return llm.Message{}, &llm.ServiceError{Op: "chat", Err: err}
	}
	if len(resp.Choices) == 0 {
		return llm.Message{}, &llm.ServiceError{Op: "chat", Err: fmt.Errorf("no choices returned")}
	}

	return llm.Message{
		Role:    llm.RoleAssistant,
		Content: resp.Choices[0].Message.Content,
	}, nil
}
