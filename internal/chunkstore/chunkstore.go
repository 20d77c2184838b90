// Package chunkstore reads and writes the two persisted chunk files: a
// chunk text/metadata file and a parallel embeddings file, matched by index.
package chunkstore

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/jsonx"
)

// Paths locates the chunk and embedding files.
type Paths struct {
	Chunks     string
	Embeddings string
}

// record is the on-disk shape of one chunk.
type record struct {
	Text       string            `json:"text"`
	PageNumber int               `json:"page_number"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Load reads both files and returns the chunks with their embeddings attached.
// The chunk file may be an array of records, an array of plain strings, or an
// object wrapping either under "chunks". Any inconsistency between the two
// files is a configuration error.
func Load(p Paths) ([]domain.Chunk, error) {
	chunkData, err := os.ReadFile(p.Chunks)
	if err != nil {
		return nil, domain.NewConfigError("read chunks", err)
	}
	chunks, err := parseChunks(chunkData)
	if err != nil {
		return nil, domain.NewConfigError("parse "+p.Chunks, err)
	}

	embData, err := os.ReadFile(p.Embeddings)
	if err != nil {
		return nil, domain.NewConfigError("read embeddings", err)
	}
	var vectors [][]float32
	if err := jsonx.Unmarshal(embData, &vectors); err != nil {
		return nil, domain.NewConfigError("parse "+p.Embeddings, err)
	}

	if len(vectors) != len(chunks) {
		return nil, domain.NewConfigError("load", fmt.Errorf("%w: %d chunks but %d embeddings",
			domain.ErrStoreMismatch, len(chunks), len(vectors)))
	}
	for i := range chunks {
		if len(vectors[i]) == 0 {
			return nil, domain.NewConfigError("load", fmt.Errorf("%w: embedding %d is empty", domain.ErrStoreMismatch, i))
		}
		if len(vectors[i]) != len(vectors[0]) {
			return nil, domain.NewConfigError("load", fmt.Errorf("%w: embedding %d has %d values, expected %d",
				domain.ErrDimensionMismatch, i, len(vectors[i]), len(vectors[0])))
		}
		chunks[i].Embedding = vectors[i]
	}
	return chunks, nil
}

// Save writes chunks and their embeddings to the two files.
func Save(p Paths, chunks []domain.Chunk) error {
	records := make([]record, len(chunks))
	vectors := make([][]float32, len(chunks))
	for i, ch := range chunks {
		if len(ch.Embedding) == 0 {
			return fmt.Errorf("chunk %d has no embedding", i)
		}
		records[i] = record{Text: ch.Text, PageNumber: ch.PageNumber, Metadata: ch.Metadata}
		vectors[i] = ch.Embedding
	}

	chunkData, err := jsonx.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	embData, err := jsonx.Marshal(vectors)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p.Chunks, chunkData, 0o644); err != nil {
		return err
	}
	return os.WriteFile(p.Embeddings, embData, 0o644)
}

func parseChunks(data []byte) ([]domain.Chunk, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get("chunks")
	}
	if !root.IsArray() {
		return nil, errors.New(`expected an array of chunks or an object with a "chunks" array`)
	}

	var (
		chunks []domain.Chunk
		perr   error
	)
	root.ForEach(func(_, v gjson.Result) bool {
		ch := domain.Chunk{Index: len(chunks)}
		switch {
		case v.Type == gjson.String:
			ch.Text = v.String()
		case v.IsObject():
			ch.Text = v.Get("text").String()
			ch.PageNumber = int(v.Get("page_number").Int())
			if meta := v.Get("metadata"); meta.IsObject() {
				ch.Metadata = make(map[string]string)
				meta.ForEach(func(k, val gjson.Result) bool {
					ch.Metadata[k.String()] = val.String()
					return true
				})
			}
		default:
			perr = fmt.Errorf("chunk %d: unsupported JSON type %s", len(chunks), v.Type)
			return false
		}
		chunks = append(chunks, ch)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return chunks, nil
}
