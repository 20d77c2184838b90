// Package gemini embeds text with the Gemini embedding models.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

const DefaultModel = "text-embedding-004"

// Config configures the Gemini embeddings client.
type Config struct {
	APIKey    string
	Model     string
	Dimension int
	// Options are passed to genai.NewClient after the API key.
	Options []option.ClientOption
}

// Embedder implements domain.Embedder on a genai.EmbeddingModel.
type Embedder struct {
	client    *genai.Client
	model     *genai.EmbeddingModel
	name      string
	dimension int
}

// NewEmbedder creates the genai client. It does not contact the API.
func NewEmbedder(ctx context.Context, cfg Config) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", domain.ErrMissingAPIKey)
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("gemini: invalid dimension %d", cfg.Dimension)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	opts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, cfg.Options...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Embedder{
		client:    client,
		model:     client.EmbeddingModel(cfg.Model),
		name:      cfg.Model,
		dimension: cfg.Dimension,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "gemini:" + e.name }

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed returns an embedding vector for the given text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}
	resp, err := e.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embeddings: %w", err)
	}
	if resp.Embedding == nil {
		return nil, fmt.Errorf("gemini embeddings: empty response")
	}
	return e.convert(resp.Embedding)
}

// EmbedBatch embeds all texts with one batch request.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	b := e.model.NewBatch()
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, domain.ErrEmptyText
		}
		b.AddContent(genai.Text(t))
	}
	resp, err := e.model.BatchEmbedContents(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("gemini embeddings: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini embeddings: got %d vectors for %d texts", len(resp.Embeddings), len(texts))
	}
	out := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if out[i], err = e.convert(emb); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Close releases the underlying client.
func (e *Embedder) Close() error { return e.client.Close() }

func (e *Embedder) convert(emb *genai.ContentEmbedding) ([]float32, error) {
	if emb == nil || len(emb.Values) != e.dimension {
		n := 0
		if emb != nil {
			n = len(emb.Values)
		}
		return nil, fmt.Errorf("%w: model returned %d values, configured %d", domain.ErrDimensionMismatch, n, e.dimension)
	}
	out := make([]float32, len(emb.Values))
	for i, v := range emb.Values {
		out[i] = float32(v)
	}
	return out, nil
}
