package embedding

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/config"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/embedding/hashing"
)

type countingEmbedder struct {
	domain.Embedder
	calls int
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return c.Embedder.Embed(ctx, text)
}

func (c *countingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	c.calls++
	return c.Embedder.EmbedBatch(ctx, texts)
}

type closingEmbedder struct {
	domain.Embedder
	closed int
}

func (c *closingEmbedder) Close() error {
	c.closed++
	return nil
}

func TestCachedEmbedder_CloseReleasesWrapped(t *testing.T) {
	h, err := hashing.NewEmbedder(16)
	require.NoError(t, err)
	inner := &closingEmbedder{Embedder: h}
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})

	c := NewCachedEmbedder(inner, rdb, CacheOptions{}, zap.NewNop())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, inner.closed)

	_, err = rdb.Ping(context.Background()).Result()
	assert.Error(t, err)
}

func TestCachedEmbedder_CloseWithoutClosers(t *testing.T) {
	h, err := hashing.NewEmbedder(16)
	require.NoError(t, err)
	assert.NoError(t, NewCachedEmbedder(h, nil, CacheOptions{}, nil).Close())
}

func TestNew_Hashing(t *testing.T) {
	emb, err := New(context.Background(), config.EmbedderConfig{Type: "hashing", Dimension: 64}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "hashing", emb.Name())
	assert.Equal(t, 64, emb.Dimension())
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(context.Background(), config.EmbedderConfig{Type: "word2vec", Dimension: 64}, zap.NewNop())
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
	assert.True(t, domain.IsConfigError(err))
}

func TestNew_MissingKey(t *testing.T) {
	t.Setenv("RAG_TEST_EMPTY_KEY", "")
	for _, typ := range []string{"huggingface", "openai", "gemini"} {
		_, err := New(context.Background(), config.EmbedderConfig{Type: typ, APIKeyEnv: "RAG_TEST_EMPTY_KEY", Dimension: 8}, zap.NewNop())
		assert.ErrorIs(t, err, domain.ErrMissingAPIKey, typ)
		assert.True(t, domain.IsConfigError(err), typ)
	}
}

func TestNew_HuggingFaceWithKey(t *testing.T) {
	t.Setenv("RAG_TEST_HF_KEY", "hf_x")
	emb, err := New(context.Background(), config.EmbedderConfig{
		Type: "huggingface", APIKeyEnv: "RAG_TEST_HF_KEY", Model: "sentence-transformers/all-MiniLM-L6-v2", Dimension: 384,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 384, emb.Dimension())
}

func TestCachedEmbedder_NilRedisPassesThrough(t *testing.T) {
	h, err := hashing.NewEmbedder(16)
	require.NoError(t, err)
	inner := &countingEmbedder{Embedder: h}
	c := NewCachedEmbedder(inner, nil, CacheOptions{}, nil)

	_, err = c.Embed(context.Background(), "interfaces")
	require.NoError(t, err)
	_, err = c.Embed(context.Background(), "interfaces")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, "hashing-cached", c.Name())
}

func TestCachedEmbedder_UnreachableRedisFallsBack(t *testing.T) {
	h, err := hashing.NewEmbedder(16)
	require.NoError(t, err)
	inner := &countingEmbedder{Embedder: h}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := NewCachedEmbedder(inner, rdb, CacheOptions{TTL: time.Minute}, zap.NewNop())

	want, _ := h.Embed(context.Background(), "generics")
	got, err := c.Embed(context.Background(), "generics")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	batch, err := c.EmbedBatch(context.Background(), []string{"generics", "lambdas"})
	require.NoError(t, err)
	assert.Len(t, batch, 2)
	assert.Equal(t, want, batch[0])
}

func TestCachedEmbedder_KeyDependsOnModelAndText(t *testing.T) {
	h16, _ := hashing.NewEmbedder(16)
	c := NewCachedEmbedder(h16, nil, CacheOptions{KeyPrefix: "t:"}, nil)

	assert.Equal(t, c.key("a"), c.key("a"))
	assert.NotEqual(t, c.key("a"), c.key("b"))
	assert.Contains(t, c.key("a"), "t:")
}
