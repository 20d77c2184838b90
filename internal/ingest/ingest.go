// Package ingest turns a textbook PDF into the chunk and embedding files the
// chat command loads at startup.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/chunkstore"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

// PageSource extracts the pages of the document at path.
type PageSource func(path string) ([]domain.Page, error)

// Options tunes an ingest run.
type Options struct {
	BatchSize     int
	Workers       int
	MinChunkChars int
}

// Stats summarizes a finished run.
type Stats struct {
	Pages     int
	Chunks    int
	Skipped   int
	Dimension int
	Elapsed   time.Duration
}

// Ingester chunks pages and embeds the chunks in parallel batches.
type Ingester struct {
	pages    PageSource
	chunker  domain.Chunker
	embedder domain.Embedder
	opts     Options
	log      *zap.Logger
}

// New creates an Ingester. Non-positive options fall back to one worker and
// batches of 32.
func New(pages PageSource, chunker domain.Chunker, embedder domain.Embedder, opts Options, log *zap.Logger) *Ingester {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 32
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Ingester{pages: pages, chunker: chunker, embedder: embedder, opts: opts, log: log}
}

// Run processes the document at path and writes the result to out. The
// written chunks keep document order regardless of which batch finishes first.
func (in *Ingester) Run(ctx context.Context, path string, out chunkstore.Paths) (Stats, error) {
	start := time.Now()
	pages, err := in.pages(path)
	if err != nil {
		return Stats{}, fmt.Errorf("extract %s: %w", path, err)
	}
	if len(pages) == 0 {
		return Stats{}, fmt.Errorf("no text found in %s", path)
	}
	in.log.Info("pages extracted", zap.String("path", path), zap.Int("pages", len(pages)))

	raw, err := in.chunker.Chunk(pages)
	if err != nil {
		return Stats{}, fmt.Errorf("chunk: %w", err)
	}
	chunks := in.filter(raw, filepath.Base(path))
	stats := Stats{Pages: len(pages), Chunks: len(chunks), Skipped: len(raw) - len(chunks), Dimension: in.embedder.Dimension()}
	if len(chunks) == 0 {
		return stats, errors.New("every chunk was shorter than the minimum length")
	}
	in.log.Info("chunks ready", zap.Int("chunks", stats.Chunks), zap.Int("skipped", stats.Skipped))

	if err := in.embed(ctx, chunks); err != nil {
		return stats, err
	}
	if err := chunkstore.Save(out, chunks); err != nil {
		return stats, fmt.Errorf("save: %w", err)
	}
	stats.Elapsed = time.Since(start)
	in.log.Info("ingest finished",
		zap.String("chunks_path", out.Chunks),
		zap.String("embeddings_path", out.Embeddings),
		zap.Duration("elapsed", stats.Elapsed))
	return stats, nil
}

func (in *Ingester) filter(raw []domain.Chunk, source string) []domain.Chunk {
	chunks := make([]domain.Chunk, 0, len(raw))
	for _, ch := range raw {
		ch.Text = strings.TrimSpace(ch.Text)
		if ch.Text == "" || utf8.RuneCountInString(ch.Text) < in.opts.MinChunkChars {
			continue
		}
		ch.Index = len(chunks)
		ch.Metadata = map[string]string{"source": source}
		chunks = append(chunks, ch)
	}
	return chunks
}

// embed fills in chunk embeddings batch by batch on an ants pool. The first
// failure cancels the remaining batches.
func (in *Ingester) embed(ctx context.Context, chunks []domain.Chunk) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := ants.NewPool(in.opts.Workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
		mu       sync.Mutex
		done     int
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	dim := in.embedder.Dimension()
	for lo := 0; lo < len(chunks); lo += in.opts.BatchSize {
		hi := min(lo+in.opts.BatchSize, len(chunks))
		batch := chunks[lo:hi]
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			texts := make([]string, len(batch))
			for i := range batch {
				texts[i] = batch[i].Text
			}
			vecs, err := in.embedder.EmbedBatch(ctx, texts)
			if err != nil {
				fail(fmt.Errorf("embed chunks %d-%d: %w", batch[0].Index, batch[len(batch)-1].Index, err))
				return
			}
			if len(vecs) != len(batch) {
				fail(fmt.Errorf("embed chunks %d-%d: got %d vectors", batch[0].Index, batch[len(batch)-1].Index, len(vecs)))
				return
			}
			for i, v := range vecs {
				if len(v) != dim {
					fail(fmt.Errorf("%w: chunk %d has %d values, expected %d", domain.ErrDimensionMismatch, batch[i].Index, len(v), dim))
					return
				}
				batch[i].Embedding = v
			}
			mu.Lock()
			done += len(batch)
			n := done
			mu.Unlock()
			in.log.Debug("batch embedded", zap.Int("done", n), zap.Int("total", len(chunks)))
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
