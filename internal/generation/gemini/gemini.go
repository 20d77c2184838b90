// Package gemini generates answers with the Gemini generateContent API.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

const DefaultModel = "gemini-1.5-flash"

// Config configures the Gemini generator.
type Config struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int
	Timeout         time.Duration
	// Options are passed to genai.NewClient after the API key.
	Options []option.ClientOption
}

// Generator implements domain.Generator. Each Generate call is a single
// request; failures are returned to the caller without retrying.
type Generator struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	name    string
	timeout time.Duration
}

var _ domain.Generator = (*Generator)(nil)

// NewGenerator creates the genai client with fixed decoding settings.
func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", domain.ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	opts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, cfg.Options...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	if cfg.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(int32(cfg.MaxOutputTokens))
	}
	return &Generator{client: client, model: model, name: cfg.Model, timeout: cfg.Timeout}, nil
}

// Name returns the model identifier.
func (g *Generator) Name() string { return "gemini:" + g.name }

// Generate sends prompt and returns the concatenated text parts of the reply.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return extractText(resp)
}

// Close releases the underlying client.
func (g *Generator) Close() error { return g.client.Close() }

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	var parts []string
	if resp != nil {
		for _, cand := range resp.Candidates {
			if cand == nil || cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					parts = append(parts, string(text))
				}
			}
		}
	}
	answer := strings.TrimSpace(strings.Join(parts, ""))
	if answer == "" {
		return "", domain.ErrEmptyCompletion
	}
	return answer, nil
}
