// Package openai generates answers with an OpenAI-compatible chat completion
// endpoint.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

// Config configures the chat completion generator.
type Config struct {
	BaseURL         string
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int
	Timeout         time.Duration
	HTTPClient      *http.Client
}

// Generator implements domain.Generator with a single user message per call.
type Generator struct {
	client      *goopenai.Client
	model       string
	temperature float32
	maxTokens   int
}

var _ domain.Generator = (*Generator)(nil)

// NewGenerator creates a chat completion client.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", domain.ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = goopenai.GPT4oMini
	}
	oc := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	} else {
		t := cfg.Timeout
		if t == 0 {
			t = 30 * time.Second
		}
		oc.HTTPClient = &http.Client{Timeout: t}
	}
	return &Generator{
		client:      goopenai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxOutputTokens,
	}, nil
}

// Name returns the model identifier.
func (g *Generator) Name() string { return "openai:" + g.model }

// Generate sends prompt as one user message and returns the first choice.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: g.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyCompletion
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", domain.ErrEmptyCompletion
	}
	return answer, nil
}
