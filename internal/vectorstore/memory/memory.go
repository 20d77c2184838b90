package memory

import (
	"fmt"
	"math"
	"slices"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/vectorstore"
)

var _ vectorstore.Storage = (*Storage)(nil)

// Storage is an immutable in-memory vector store using brute-force cosine
// similarity. It is safe for concurrent use because nothing mutates it after
// NewStorage returns.
type Storage struct {
	dimension int
	chunks    []domain.Chunk
	norms     []float64
}

// NewStorage validates that every chunk carries an embedding of the same
// length and precomputes the vector norms.
func NewStorage(chunks []domain.Chunk) (*Storage, error) {
	s := &Storage{
		chunks: slices.Clone(chunks),
		norms:  make([]float64, len(chunks)),
	}
	for i, ch := range s.chunks {
		if len(ch.Embedding) == 0 {
			return nil, domain.NewConfigError("build store",
				fmt.Errorf("%w: chunk %d has no embedding", domain.ErrStoreMismatch, i))
		}
		if i == 0 {
			s.dimension = len(ch.Embedding)
		}
		if len(ch.Embedding) != s.dimension {
			return nil, domain.NewConfigError("build store",
				fmt.Errorf("%w: chunk %d has %d values, expected %d", domain.ErrDimensionMismatch, i, len(ch.Embedding), s.dimension))
		}
		s.norms[i] = norm(ch.Embedding)
	}
	return s, nil
}

// Dimension returns the embedding length, or 0 for an empty store.
func (s *Storage) Dimension() int { return s.dimension }

// Len returns the number of stored chunks.
func (s *Storage) Len() int { return len(s.chunks) }

// Chunks returns a copy of the stored chunks in store order.
func (s *Storage) Chunks() []domain.Chunk { return slices.Clone(s.chunks) }

// Search returns the min(topK, Len()) chunks most similar to vector, highest
// score first. Equal scores keep store order. Chunks whose vector has zero
// norm, and every chunk when the query has zero norm, have no defined
// similarity: they score -1 and rank below all chunks with a defined one.
func (s *Storage) Search(vector []float32, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 || len(s.chunks) == 0 {
		return []domain.SearchResult{}, nil
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query has %d values, store has %d", domain.ErrDimensionMismatch, len(vector), s.dimension)
	}

	type hit struct {
		idx     int
		score   float64
		defined bool
	}
	qnorm := norm(vector)
	hits := make([]hit, len(s.chunks))
	for i, ch := range s.chunks {
		h := hit{idx: i, score: undefinedScore}
		if qnorm > 0 && s.norms[i] > 0 {
			h.score = clamp(dot(ch.Embedding, vector) / (s.norms[i] * qnorm))
			h.defined = true
		}
		hits[i] = h
	}
	slices.SortStableFunc(hits, func(a, b hit) int {
		switch {
		case a.defined != b.defined:
			if a.defined {
				return -1
			}
			return 1
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	n := min(topK, len(hits))
	results := make([]domain.SearchResult, n)
	for i, h := range hits[:n] {
		results[i] = domain.SearchResult{Chunk: s.chunks[h.idx], Score: h.score}
	}
	return results, nil
}

// undefinedScore is the lowest score in range, so rank and score agree.
const undefinedScore = -1.0

func dot(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(v []float32) float64 {
	return math.Sqrt(dot(v, v))
}

// clamp keeps rounding error from pushing scores outside [-1, 1].
func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
