package chunker

import (
	"regexp"
	"strings"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

// SentenceChunker splits each page into sentence windows with overlap.
// Chunks never cross a page boundary so every chunk has a single page number.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
	splitter          *regexp.Regexp
}

func NewSentenceChunker(sentencesPerChunk, overlapSentences int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	if overlapSentences >= sentencesPerChunk {
		overlapSentences = sentencesPerChunk - 1
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
		splitter:          regexp.MustCompile(`[^.!?]+(?:[.!?]+|$)`),
	}
}

// Chunk returns the chunks of all pages in page order, indexed from zero.
func (c *SentenceChunker) Chunk(pages []domain.Page) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for _, page := range pages {
		for _, text := range c.windows(c.sentences(page.Text)) {
			chunks = append(chunks, domain.Chunk{
				Index:      len(chunks),
				Text:       text,
				PageNumber: page.Number,
			})
		}
	}
	return chunks, nil
}

func (c *SentenceChunker) sentences(text string) []string {
	var out []string
	for _, s := range c.splitter.FindAllString(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *SentenceChunker) windows(sentences []string) []string {
	var out []string
	step := c.sentencesPerChunk - c.overlapSentences
	for i := 0; i < len(sentences); i += step {
		end := min(i+c.sentencesPerChunk, len(sentences))
		out = append(out, strings.Join(sentences[i:end], " "))
		if end == len(sentences) {
			break
		}
	}
	return out
}
