// Package huggingface embeds text with the Hugging Face Inference API
// feature-extraction pipeline, e.g. sentence-transformers/all-MiniLM-L6-v2.
package huggingface

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/jsonx"
)

const (
	DefaultBaseURL = "https://api-inference.huggingface.co"
	DefaultModel   = "sentence-transformers/all-MiniLM-L6-v2"
)

// Config configures the Hugging Face embeddings client.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	Dimension  int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is a feature-extraction client implementing domain.Embedder.
type Client struct {
	endpoint  string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
}

type embedRequest struct {
	Inputs  []string `json:"inputs"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

type errorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// NewClient creates a new embeddings client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("huggingface: %w", domain.ErrMissingAPIKey)
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("huggingface: invalid dimension %d", cfg.Dimension)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	hc := cfg.HTTPClient
	if hc == nil {
		t := cfg.Timeout
		if t == 0 {
			t = 60 * time.Second
		}
		hc = &http.Client{Timeout: t}
	}
	return &Client{
		endpoint:  strings.TrimRight(cfg.BaseURL, "/") + "/pipeline/feature-extraction/" + cfg.Model,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		dimension: cfg.Dimension,
		client:    hc,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "huggingface:" + c.model }

// Dimension returns the dimensionality of the produced embedding vectors.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch embeds all texts in a single request.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, domain.ErrEmptyText
		}
	}

	body := embedRequest{Inputs: texts}
	body.Options.WaitForModel = true
	data, err := jsonx.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface embeddings: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface embeddings: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if jsonx.Unmarshal(payload, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("huggingface embeddings failed: %s: %s", resp.Status, e.Error)
		}
		return nil, fmt.Errorf("huggingface embeddings failed: %s", resp.Status)
	}

	vectors, err := decodeVectors(payload)
	if err != nil {
		return nil, fmt.Errorf("huggingface embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("huggingface embeddings: got %d vectors for %d texts", len(vectors), len(texts))
	}
	for _, v := range vectors {
		if len(v) != c.dimension {
			return nil, fmt.Errorf("%w: model returned %d values, configured %d", domain.ErrDimensionMismatch, len(v), c.dimension)
		}
	}
	return vectors, nil
}

// decodeVectors accepts one pooled vector per input, or per-token vectors
// which are mean-pooled.
func decodeVectors(payload []byte) ([][]float32, error) {
	var pooled [][]float32
	if err := jsonx.Unmarshal(payload, &pooled); err == nil {
		return pooled, nil
	}
	var tokens [][][]float32
	if err := jsonx.Unmarshal(payload, &tokens); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}
	out := make([][]float32, len(tokens))
	for i, toks := range tokens {
		out[i] = meanPool(toks)
	}
	return out, nil
}

func meanPool(tokens [][]float32) []float32 {
	if len(tokens) == 0 {
		return nil
	}
	sum := make([]float64, len(tokens[0]))
	for _, tok := range tokens {
		for j := range sum {
			if j < len(tok) {
				sum[j] += float64(tok[j])
			}
		}
	}
	out := make([]float32, len(sum))
	for j, v := range sum {
		out[j] = float32(v / float64(len(tokens)))
	}
	return out
}
