// Package prompt renders the tutor prompt from typed parts.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

// DefaultContextLabel heads the retrieved passages.
const DefaultContextLabel = "CONTEXT FROM JAVA TEXTBOOK"

// blockSeparator joins context blocks.
const blockSeparator = "\n\n---\n\n"

// noContext stands in for an empty retrieval result.
const noContext = "(no relevant passages were found)"

var tmpl = template.Must(template.New("prompt").Parse(`{{.Instruction}}

{{.ContextLabel}}:
{{.Context}}

QUESTION: {{.Question}}
{{if .Guidelines}}
INSTRUCTIONS:
{{range .Guidelines}}- {{.}}
{{end}}{{end}}
ANSWER:`))

// Template holds the parts of one prompt.
type Template struct {
	Instruction  string
	ContextLabel string
	Guidelines   []string
	Chunks       []domain.SearchResult
	Question     string
}

// Build renders the prompt. The context section is limited to budget runes;
// a budget <= 0 leaves it unlimited.
func (t Template) Build(budget int) (string, error) {
	label := t.ContextLabel
	if label == "" {
		label = DefaultContextLabel
	}
	var sb strings.Builder
	err := tmpl.Execute(&sb, struct {
		Instruction  string
		ContextLabel string
		Context      string
		Question     string
		Guidelines   []string
	}{
		Instruction:  strings.TrimSpace(t.Instruction),
		ContextLabel: label,
		Context:      Context(t.Chunks, budget),
		Question:     strings.TrimSpace(t.Question),
		Guidelines:   t.Guidelines,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return sb.String(), nil
}

// Context formats retrieved chunks as numbered blocks in rank order and cuts
// the result at budget runes.
func Context(chunks []domain.SearchResult, budget int) string {
	if len(chunks) == 0 {
		return noContext
	}
	blocks := make([]string, len(chunks))
	for i, r := range chunks {
		blocks[i] = Header(i+1, r) + "\n" + strings.TrimSpace(r.Chunk.Text)
	}
	ctx := strings.Join(blocks, blockSeparator)
	if budget > 0 {
		if runes := []rune(ctx); len(runes) > budget {
			ctx = string(runes[:budget])
		}
	}
	return ctx
}

// Header labels the rank-th context block.
func Header(rank int, r domain.SearchResult) string {
	if r.Chunk.PageNumber > 0 {
		return fmt.Sprintf("[Context %d - Page %d - Similarity: %.4f]", rank, r.Chunk.PageNumber, r.Score)
	}
	return fmt.Sprintf("[Context %d - Similarity: %.4f]", rank, r.Score)
}
