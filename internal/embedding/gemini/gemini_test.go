package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

func TestNewEmbedder_RequiresKey(t *testing.T) {
	_, err := NewEmbedder(context.Background(), Config{Dimension: 768})
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	assert.True(t, domain.IsConfigError(err))
}

func TestEmbed_RejectsBlankTextLocally(t *testing.T) {
	e, err := NewEmbedder(context.Background(), Config{APIKey: "test-key", Dimension: 768})
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, "gemini:"+DefaultModel, e.Name())
	assert.Equal(t, 768, e.Dimension())

	_, err = e.Embed(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyText)

	_, err = e.EmbedBatch(context.Background(), []string{"ok", ""})
	assert.ErrorIs(t, err, domain.ErrEmptyText)
}
