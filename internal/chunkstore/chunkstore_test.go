package chunkstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

func writeFiles(t *testing.T, chunks, embeddings string) Paths {
	t.Helper()
	dir := t.TempDir()
	p := Paths{Chunks: filepath.Join(dir, "chunks.json"), Embeddings: filepath.Join(dir, "embeddings.json")}
	require.NoError(t, os.WriteFile(p.Chunks, []byte(chunks), 0o644))
	require.NoError(t, os.WriteFile(p.Embeddings, []byte(embeddings), 0o644))
	return p
}

func TestLoad_ChunkFileShapes(t *testing.T) {
	tests := []struct {
		name   string
		chunks string
		texts  []string
		pages  []int
	}{
		{
			name:   "records",
			chunks: `[{"text":"A class is a blueprint.","page_number":12,"metadata":{"source":"java.pdf"}},{"text":"Objects are instances.","page_number":13}]`,
			texts:  []string{"A class is a blueprint.", "Objects are instances."},
			pages:  []int{12, 13},
		},
		{
			name:   "plain strings",
			chunks: `["first", "second"]`,
			texts:  []string{"first", "second"},
			pages:  []int{0, 0},
		},
		{
			name:   "wrapped",
			chunks: `{"chunks":[{"text":"first","page_number":1},"second"]}`,
			texts:  []string{"first", "second"},
			pages:  []int{1, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFiles(t, tt.chunks, `[[1,0],[0,1]]`)
			chunks, err := Load(p)
			require.NoError(t, err)
			require.Len(t, chunks, 2)
			for i := range chunks {
				assert.Equal(t, i, chunks[i].Index)
				assert.Equal(t, tt.texts[i], chunks[i].Text)
				assert.Equal(t, tt.pages[i], chunks[i].PageNumber)
			}
			assert.Equal(t, []float32{1, 0}, chunks[0].Embedding)
			assert.Equal(t, []float32{0, 1}, chunks[1].Embedding)
		})
	}
}

func TestLoad_Metadata(t *testing.T) {
	p := writeFiles(t, `[{"text":"x","metadata":{"source":"java.pdf","chapter":3}}]`, `[[0.5]]`)
	chunks, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"source": "java.pdf", "chapter": "3"}, chunks[0].Metadata)
}

func TestLoad_EmptyStore(t *testing.T) {
	p := writeFiles(t, `[]`, `[]`)
	chunks, err := Load(p)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestLoad_Mismatches(t *testing.T) {
	tests := []struct {
		name       string
		chunks     string
		embeddings string
		target     error
	}{
		{"count", `["a","b"]`, `[[1,0]]`, domain.ErrStoreMismatch},
		{"ragged", `["a","b"]`, `[[1,0],[1]]`, domain.ErrDimensionMismatch},
		{"empty vector", `["a"]`, `[[]]`, domain.ErrStoreMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFiles(t, tt.chunks, tt.embeddings))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.True(t, domain.IsConfigError(err))
		})
	}
}

func TestLoad_BadFiles(t *testing.T) {
	_, err := Load(writeFiles(t, `{"pages":[]}`, `[]`))
	assert.True(t, domain.IsConfigError(err))

	_, err = Load(writeFiles(t, `[1, 2]`, `[[1],[1]]`))
	assert.True(t, domain.IsConfigError(err))

	_, err = Load(Paths{Chunks: filepath.Join(t.TempDir(), "missing.json")})
	assert.True(t, domain.IsConfigError(err))
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	p := Paths{Chunks: filepath.Join(dir, "c.json"), Embeddings: filepath.Join(dir, "e.json")}
	in := []domain.Chunk{
		{Index: 0, Text: "Java is object oriented.", PageNumber: 1, Embedding: []float32{0.6, 0.8}, Metadata: map[string]string{"source": "book.pdf"}},
		{Index: 1, Text: "The JVM runs bytecode.", PageNumber: 2, Embedding: []float32{1, 0}},
	}
	require.NoError(t, Save(p, in))

	out, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSave_RequiresEmbeddings(t *testing.T) {
	dir := t.TempDir()
	err := Save(Paths{Chunks: filepath.Join(dir, "c.json"), Embeddings: filepath.Join(dir, "e.json")},
		[]domain.Chunk{{Text: "no vector"}})
	assert.Error(t, err)
}
