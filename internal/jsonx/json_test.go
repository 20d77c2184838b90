package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorsSurviveEncoding(t *testing.T) {
	in := [][]float32{{1, 0.5, -0.25}, {0, 0, 0}}

	data, err := Marshal(in)
	require.NoError(t, err)

	var out [][]float32
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestMarshalIndent(t *testing.T) {
	data, err := MarshalIndent(map[string]int{"a": 1}, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(data))
}
