package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

func TestChunk_WindowsWithOverlap(t *testing.T) {
	c := NewSentenceChunker(2, 1)
	chunks, err := c.Chunk([]domain.Page{{Number: 7, Text: "One. Two! Three? Four."}})
	require.NoError(t, err)

	var texts []string
	for _, ch := range chunks {
		texts = append(texts, ch.Text)
		assert.Equal(t, 7, ch.PageNumber)
	}
	assert.Equal(t, []string{"One. Two!", "Two! Three?", "Three? Four."}, texts)
}

func TestChunk_IndexesAcrossPages(t *testing.T) {
	c := NewSentenceChunker(3, 0)
	chunks, err := c.Chunk([]domain.Page{
		{Number: 1, Text: "A class is a blueprint. An object is an instance."},
		{Number: 2, Text: ""},
		{Number: 3, Text: "Interfaces declare behaviour without a trailing period"},
	})
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 1, chunks[0].PageNumber)
	assert.Equal(t, "A class is a blueprint. An object is an instance.", chunks[0].Text)

	assert.Equal(t, 1, chunks[1].Index)
	assert.Equal(t, 3, chunks[1].PageNumber)
	assert.Equal(t, "Interfaces declare behaviour without a trailing period", chunks[1].Text)
}

func TestNewSentenceChunker_ClampsOverlap(t *testing.T) {
	c := NewSentenceChunker(2, 5)
	chunks, err := c.Chunk([]domain.Page{{Number: 1, Text: "A. B. C."}})
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}
