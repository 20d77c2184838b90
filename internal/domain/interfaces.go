package domain

import "context"

// Page is the extracted text of a single page of the source PDF.
type Page struct {
	Number int
	Text   string
}

// Chunk is a contiguous span of textbook text with its precomputed embedding.
// Chunks are created by the offline ingest step and are read-only afterwards.
type Chunk struct {
	Index      int
	Text       string
	PageNumber int
	Embedding  []float32
	Metadata   map[string]string
}

// SearchResult represents a matching chunk with its cosine similarity.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Answer is the generated reply together with the chunks it was built from.
type Answer struct {
	Text    string
	Sources []SearchResult
}

// Embedder converts free text into a fixed-length vector.
// The same embedder must be used for chunk preprocessing and query encoding.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Chunker splits extracted pages into chunks suitable for retrieval.
type Chunker interface {
	Chunk(pages []Page) ([]Chunk, error)
}

// Retriever ranks stored chunks against a query vector.
type Retriever interface {
	Dimension() int
	Len() int
	Search(vector []float32, topK int) ([]SearchResult, error)
}

// Generator submits a prompt to a text-generation endpoint.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summarizer condenses retrieved text for display.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
	// Digest returns a one-line preview of at most maxRunes runes.
	Digest(text string, maxRunes int) string
}

// QAService defines the operations exposed by the application core.
type QAService interface {
	Ask(ctx context.Context, session Session, query string) (Session, Answer, error)
}
