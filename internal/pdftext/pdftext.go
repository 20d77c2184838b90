// Package pdftext extracts plain text from a PDF one page at a time.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

// ExtractPages returns the normalized text of every non-empty page in the
// file at path. Page numbers are 1-based.
func ExtractPages(path string) ([]domain.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := make([]domain.Page, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		text = Normalize(text)
		if text == "" {
			continue
		}
		pages = append(pages, domain.Page{Number: i, Text: text})
	}
	return pages, nil
}

// Normalize collapses runs of whitespace into single spaces and rejoins words
// hyphenated across line breaks.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "-\n", "")
	return strings.Join(strings.Fields(text), " ")
}
