// Package generation selects the answer generator named by configuration.
package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/config"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/generation/gemini"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/generation/openai"
)

// New builds the generator described by cfg. Missing keys and unknown types
// are configuration errors.
func New(ctx context.Context, cfg config.GeneratorConfig) (domain.Generator, error) {
	var (
		gen domain.Generator
		err error
	)
	switch cfg.Type {
	case "gemini", "openai":
		var key string
		if key, err = config.LookupAPIKey(cfg.APIKeyEnv); err != nil {
			break
		}
		timeout := time.Duration(cfg.TimeoutSecs) * time.Second
		if cfg.Type == "gemini" {
			gen, err = gemini.NewGenerator(ctx, gemini.Config{
				APIKey: key, Model: cfg.Model, Temperature: cfg.Temperature,
				MaxOutputTokens: cfg.MaxOutputTokens, Timeout: timeout,
			})
		} else {
			gen, err = openai.NewGenerator(openai.Config{
				BaseURL: cfg.BaseURL, APIKey: key, Model: cfg.Model, Temperature: cfg.Temperature,
				MaxOutputTokens: cfg.MaxOutputTokens, Timeout: timeout,
			})
		}
	default:
		err = fmt.Errorf("%w: generator type %q", domain.ErrUnknownProvider, cfg.Type)
	}
	if err != nil {
		return nil, domain.NewConfigError("generator", err)
	}
	return gen, nil
}
