package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/chunker"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/chunkstore"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/embedding"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/ingest"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/logging"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/pdftext"
)

type ingestOptions struct {
	pdf            string
	chunksPath     string
	embeddingsPath string
}

func newIngestCommand(root *rootOptions) *cobra.Command {
	opts := &ingestOptions{}
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Extract, chunk and embed a textbook PDF",
		Long: `Extract the text of a PDF page by page, split it into sentence chunks,
embed every chunk with the configured embedder and write the chunk and
embedding files used by "rag chat".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := root.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if opts.chunksPath != "" {
				cfg.Data.ChunksPath = opts.chunksPath
			}
			if opts.embeddingsPath != "" {
				cfg.Data.EmbeddingsPath = opts.embeddingsPath
			}

			log, err := logging.New(cfg.Log, logging.WithConsole(os.Stderr))
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			emb, err := embedding.New(cmd.Context(), cfg.Embedder, log)
			if err != nil {
				return err
			}
			if c, ok := emb.(io.Closer); ok {
				defer closeQuietly(c, "embedder", log)
			}
			var ch domain.Chunker
			switch cfg.Chunker.Type {
			case "sentence":
				ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
			default:
				return domain.NewConfigError("chunker", fmt.Errorf("%w: chunker type %q", domain.ErrUnknownProvider, cfg.Chunker.Type))
			}

			in := ingest.New(pdftext.ExtractPages, ch, emb, ingest.Options{
				BatchSize:     cfg.Embedder.BatchSize,
				Workers:       cfg.Ingest.Workers,
				MinChunkChars: cfg.Ingest.MinChunkChars,
			}, log)
			stats, err := in.Run(cmd.Context(), opts.pdf, chunkstore.Paths{
				Chunks:     cfg.Data.ChunksPath,
				Embeddings: cfg.Data.EmbeddingsPath,
			})
			if err != nil {
				log.Error("ingest failed", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d pages, %d chunks (%d skipped), dimension %d, %s\n",
				stats.Pages, stats.Chunks, stats.Skipped, stats.Dimension, stats.Elapsed.Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "textbook PDF to ingest")
	cmd.Flags().StringVar(&opts.chunksPath, "chunks", "", "output chunk file (default from config)")
	cmd.Flags().StringVar(&opts.embeddingsPath, "embeddings", "", "output embedding file (default from config)")
	_ = cmd.MarkFlagRequired("pdf")
	return cmd
}
