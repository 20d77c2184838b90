// Package embedding selects the text embedder named by configuration and
// optionally wraps it with a redis-backed cache.
package embedding

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/config"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/embedding/gemini"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/embedding/hashing"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/embedding/huggingface"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/embedding/openai"
)

// New builds the embedder described by cfg. Missing keys and unknown types
// are configuration errors.
func New(ctx context.Context, cfg config.EmbedderConfig, log *zap.Logger) (domain.Embedder, error) {
	var (
		emb domain.Embedder
		err error
	)
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second

	switch cfg.Type {
	case "hashing":
		emb, err = hashing.NewEmbedder(cfg.Dimension)
	case "huggingface":
		var key string
		if key, err = config.LookupAPIKey(cfg.APIKeyEnv); err != nil {
			break
		}
		emb, err = huggingface.NewClient(huggingface.Config{
			BaseURL: cfg.BaseURL, APIKey: key, Model: cfg.Model, Dimension: cfg.Dimension, Timeout: timeout,
		})
	case "openai":
		var key string
		if key, err = config.LookupAPIKey(cfg.APIKeyEnv); err != nil {
			break
		}
		emb, err = openai.NewClient(openai.Config{
			BaseURL: cfg.BaseURL, APIKey: key, Model: cfg.Model, Dimension: cfg.Dimension, Timeout: timeout,
		})
	case "gemini":
		var key string
		if key, err = config.LookupAPIKey(cfg.APIKeyEnv); err != nil {
			break
		}
		emb, err = gemini.NewEmbedder(ctx, gemini.Config{APIKey: key, Model: cfg.Model, Dimension: cfg.Dimension})
	default:
		err = fmt.Errorf("%w: embedder type %q", domain.ErrUnknownProvider, cfg.Type)
	}
	if err != nil {
		return nil, domain.NewConfigError("embedder", err)
	}

	if cfg.Cache.RedisAddr == "" {
		return emb, nil
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: cfg.Cache.RedisAddr, DB: cfg.Cache.RedisDB})
	log.Info("embedding cache enabled", zap.String("addr", cfg.Cache.RedisAddr), zap.Int("db", cfg.Cache.RedisDB))
	return NewCachedEmbedder(emb, rdb, CacheOptions{
		TTL:       time.Duration(cfg.Cache.TTLSecs) * time.Second,
		KeyPrefix: cfg.Cache.KeyPrefix,
	}, log), nil
}
