package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/jsonx"
)

// CacheOptions configures CachedEmbedder.
type CacheOptions struct {
	TTL       time.Duration
	KeyPrefix string
}

// CachedEmbedder stores embeddings in redis keyed by a hash of the model name
// and the text. Any redis failure falls back to the wrapped embedder; the
// cache never turns a successful embedding into an error.
type CachedEmbedder struct {
	next  domain.Embedder
	redis *goredis.Client
	opts  CacheOptions
	log   *zap.Logger
}

var _ domain.Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder wraps next. A nil redis client disables caching.
func NewCachedEmbedder(next domain.Embedder, rdb *goredis.Client, opts CacheOptions, log *zap.Logger) *CachedEmbedder {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "emb:"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedEmbedder{next: next, redis: rdb, opts: opts, log: log}
}

func (c *CachedEmbedder) Name() string   { return c.next.Name() + "-cached" }
func (c *CachedEmbedder) Dimension() int { return c.next.Dimension() }

// Close closes the redis client and the wrapped embedder when it holds a
// client of its own.
func (c *CachedEmbedder) Close() error {
	var errs []error
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	if closer, ok := c.next.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

func (c *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(c.next.Name() + "\x00" + text))
	return c.opts.KeyPrefix + hex.EncodeToString(sum[:])
}

// Embed returns the cached vector for text or computes and stores it.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.redis == nil {
		return c.next.Embed(ctx, text)
	}
	key := c.key(text)
	if v, ok := c.get(ctx, key); ok {
		c.log.Debug("embedding cache hit", zap.Int("text_length", len(text)))
		return v, nil
	}
	v, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, v)
	return v, nil
}

// EmbedBatch serves cached entries and sends only the misses to the wrapped
// embedder, keeping input order.
func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if c.redis == nil {
		return c.next.EmbedBatch(ctx, texts)
	}
	out := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string
	for i, t := range texts {
		if v, ok := c.get(ctx, c.key(t)); ok {
			out[i] = v
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, t)
	}
	if len(missTexts) == 0 {
		c.log.Debug("all embeddings from cache", zap.Int("total", len(texts)))
		return out, nil
	}

	c.log.Debug("embedding cache miss", zap.Int("total", len(texts)), zap.Int("uncached", len(missTexts)))
	vecs, err := c.next.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	for j, i := range missIdx {
		out[i] = vecs[j]
		c.set(ctx, c.key(missTexts[j]), vecs[j])
	}
	return out, nil
}

func (c *CachedEmbedder) get(ctx context.Context, key string) ([]float32, bool) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("redis get failed, falling back to embedder", zap.Error(err))
		}
		return nil, false
	}
	var v []float32
	if err := jsonx.Unmarshal(data, &v); err != nil || len(v) != c.Dimension() {
		c.log.Warn("dropping corrupt cached embedding", zap.String("key", key))
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}
	return v, true
}

func (c *CachedEmbedder) set(ctx context.Context, key string, v []float32) {
	data, err := jsonx.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.opts.TTL).Err(); err != nil {
		c.log.Warn("failed to cache embedding", zap.Error(err))
	}
}
