// Package service runs one question through the retrieval pipeline:
// validate, embed, retrieve, build the prompt, generate.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/prompt"
)

// Options holds the fixed per-query settings.
type Options struct {
	TopK          int
	ContextBudget int
	Instruction   string
	ContextLabel  string
	Guidelines    []string
}

// Pipeline implements domain.QAService. It holds no per-session state, so
// one Pipeline serves any number of sessions concurrently as long as its
// components do.
type Pipeline struct {
	embedder  domain.Embedder
	retriever domain.Retriever
	generator domain.Generator
	opts      Options
	log       *zap.Logger
	now       func() time.Time
}

var _ domain.QAService = (*Pipeline)(nil)

// NewPipeline wires the components. A nil logger disables logging.
func NewPipeline(emb domain.Embedder, ret domain.Retriever, gen domain.Generator, opts Options, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{embedder: emb, retriever: ret, generator: gen, opts: opts, log: log, now: time.Now}
}

// Ask answers query and returns the session with the new exchange appended.
// On any error the input session is returned unchanged and no partial answer
// is produced. History is never fed back into the prompt.
func (p *Pipeline) Ask(ctx context.Context, session domain.Session, query string) (domain.Session, domain.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return session, domain.Answer{}, domain.ErrEmptyQuery
	}
	start := p.now()
	log := p.log.With(zap.String("session", session.ID))

	vec, err := p.embedder.Embed(ctx, query)
	if err != nil {
		log.Warn("query embedding failed", zap.Error(err))
		return session, domain.Answer{}, fmt.Errorf("embed query: %w", err)
	}
	sources, err := p.retriever.Search(vec, p.opts.TopK)
	if err != nil {
		log.Warn("retrieval failed", zap.Error(err))
		return session, domain.Answer{}, fmt.Errorf("retrieve: %w", err)
	}

	text, err := prompt.Template{
		Instruction:  p.opts.Instruction,
		ContextLabel: p.opts.ContextLabel,
		Guidelines:   p.opts.Guidelines,
		Chunks:       sources,
		Question:     query,
	}.Build(p.opts.ContextBudget)
	if err != nil {
		return session, domain.Answer{}, err
	}

	reply, err := p.generator.Generate(ctx, text)
	if err != nil {
		log.Warn("generation failed", zap.String("generator", p.generator.Name()), zap.Error(err))
		return session, domain.Answer{}, fmt.Errorf("generate: %w", err)
	}

	answer := domain.Answer{Text: reply, Sources: sources}
	fields := []zap.Field{
		zap.Int("query_length", len(query)),
		zap.Int("k", p.opts.TopK),
		zap.Int("sources", len(sources)),
		zap.Int("prompt_length", len(text)),
		zap.Duration("latency", p.now().Sub(start)),
	}
	if len(sources) > 0 {
		fields = append(fields, zap.Float64("top_score", sources[0].Score))
	}
	log.Info("question answered", fields...)

	return session.Append(domain.Exchange{Question: query, Answer: answer, AskedAt: start}), answer, nil
}
