package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/chunkstore"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/config"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/embedding"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/memo"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/vectorstore"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/vectorstore/memory"
)

// Stores and embedders are expensive to build and immutable once built, so
// they are constructed once per distinct configuration.
var (
	stores    memo.Group[chunkstore.Paths, vectorstore.Storage]
	embedders memo.Group[config.EmbedderConfig, domain.Embedder]
)

func loadStore(cfg config.DataConfig, log *zap.Logger) (vectorstore.Storage, error) {
	paths := chunkstore.Paths{Chunks: cfg.ChunksPath, Embeddings: cfg.EmbeddingsPath}
	return stores.Get(paths, func() (vectorstore.Storage, error) {
		chunks, err := chunkstore.Load(paths)
		if err != nil {
			return nil, err
		}
		s, err := memory.NewStorage(chunks)
		if err != nil {
			return nil, err
		}
		log.Info("chunk store loaded",
			zap.String("chunks_path", paths.Chunks),
			zap.Int("chunks", s.Len()),
			zap.Int("dimension", s.Dimension()))
		return s, nil
	})
}

func loadEmbedder(ctx context.Context, cfg config.EmbedderConfig, log *zap.Logger) (domain.Embedder, error) {
	return embedders.Get(cfg, func() (domain.Embedder, error) {
		emb, err := embedding.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		log.Info("embedder ready", zap.String("embedder", emb.Name()), zap.Int("dimension", emb.Dimension()))
		return emb, nil
	})
}

// releaseEmbedder closes emb if it holds a client and evicts it, so a later
// loadEmbedder for the same configuration builds a fresh one.
func releaseEmbedder(cfg config.EmbedderConfig, emb domain.Embedder, log *zap.Logger) {
	embedders.Forget(cfg)
	if c, ok := emb.(io.Closer); ok {
		closeQuietly(c, "embedder", log)
	}
}

// checkDimensions rejects a store built with a different embedding model.
// An empty store matches any embedder.
func checkDimensions(store domain.Retriever, emb domain.Embedder) error {
	if store.Len() == 0 || store.Dimension() == emb.Dimension() {
		return nil
	}
	return domain.NewConfigError("startup", fmt.Errorf("%w: store vectors have %d values but embedder %s produces %d",
		domain.ErrDimensionMismatch, store.Dimension(), emb.Name(), emb.Dimension()))
}
