package app

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/generation"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/logging"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/service"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/summarizer"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/tui"
)

func newChatCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive chat interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd.Context(), root)
		},
	}
}

func runChat(ctx context.Context, root *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, path, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log.Info("config loaded", zap.String("path", path),
		zap.String("embedder", cfg.Embedder.Type), zap.String("generator", cfg.Generator.Type))

	store, err := loadStore(cfg.Data, log)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	emb, err := loadEmbedder(ctx, cfg.Embedder, log)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	defer releaseEmbedder(cfg.Embedder, emb, log)
	if err := checkDimensions(store, emb); err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	gen, err := generation.New(ctx, cfg.Generator)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	if c, ok := gen.(io.Closer); ok {
		defer closeQuietly(c, "generator", log)
	}

	pipeline := service.NewPipeline(emb, store, gen, service.Options{
		TopK:          cfg.Retrieval.TopK,
		ContextBudget: cfg.Retrieval.ContextBudgetChars,
		Instruction:   cfg.Prompt.Instruction,
		Guidelines:    cfg.Prompt.Guidelines,
	}, log)

	title := fmt.Sprintf("Java Textbook Tutor · %d passages · %s", store.Len(), gen.Name())
	m := tui.New(ctx, pipeline, summarizer.NewFrequencySummarizer(), domain.NewSession(), title)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(tui.Model); ok && fm.Err() != nil {
		log.Error("chat stopped", zap.Error(fm.Err()))
		return fm.Err()
	}
	return nil
}

func closeQuietly(c io.Closer, what string, log *zap.Logger) {
	if err := c.Close(); err != nil {
		log.Warn("close failed", zap.String("component", what), zap.Error(err))
	}
}
