package vectorstore

import "github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"

// Storage holds the chunk vectors loaded at startup and supports similarity
// search over them. Implementations are read-only after construction.
type Storage interface {
	domain.Retriever
	Chunks() []domain.Chunk
}
