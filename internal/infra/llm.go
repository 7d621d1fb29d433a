package infra

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// LLMClient talks to any OpenAI-compatible chat completions endpoint. The
// default configuration targets Gemini's compatibility layer.
type LLMClient struct {
	client  *openai.Client
	model   string
	breaker *CircuitBreaker
}

// NewLLMClient builds a client for baseURL using apiKey as bearer token.
// Every call goes through breaker.
func NewLLMClient(apiKey, baseURL, model string, timeout time.Duration, breaker *CircuitBreaker) *LLMClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &LLMClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		breaker: breaker,
	}
}

// Complete sends one system message and one user message and returns the
// first choice's text. An empty string with a nil error means the model
// produced no answer.
func (c *LLMClient) Complete(ctx context.Context, system, user string) (string, error) {
	var answer string
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		})
		if err != nil {
			return fmt.Errorf("llm: chat completion: %w", err)
		}
		if len(resp.Choices) > 0 {
			answer = strings.TrimSpace(resp.Choices[0].Message.Content)
		}
		return nil
	})
	return answer, err
}
