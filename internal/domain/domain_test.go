package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AppendDoesNotMutateReceiver(t *testing.T) {
	s0 := NewSession()
	require.NotEmpty(t, s0.ID)

	s1 := s0.Append(Exchange{Question: "What is Java?"})
	s2 := s1.Append(Exchange{Question: "What is a class?"})

	assert.Equal(t, 0, s0.Len())
	assert.Equal(t, 1, s1.Len())
	assert.Equal(t, 2, s2.Len())
	assert.Equal(t, s0.ID, s2.ID)
	assert.Equal(t, "What is a class?", s2.History()[1].Question)

	// Appending twice to the same base must not share backing arrays.
	a := s1.Append(Exchange{Question: "a"})
	b := s1.Append(Exchange{Question: "b"})
	assert.Equal(t, "a", a.History()[1].Question)
	assert.Equal(t, "b", b.History()[1].Question)
}

func TestSession_HistoryReturnsCopy(t *testing.T) {
	s := NewSession().Append(Exchange{Question: "q"})
	h := s.History()
	h[0].Question = "changed"
	assert.Equal(t, "q", s.History()[0].Question)
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		config bool
		input  bool
	}{
		{"missing key", fmt.Errorf("gemini: %w", ErrMissingAPIKey), true, false},
		{"dimension", fmt.Errorf("store: %w", ErrDimensionMismatch), true, false},
		{"wrapped config", NewConfigError("load", errors.New("boom")), true, false},
		{"empty query", ErrEmptyQuery, false, true},
		{"empty text", fmt.Errorf("embed: %w", ErrEmptyText), false, true},
		{"transient", errors.New("connection reset"), false, false},
		{"empty completion", ErrEmptyCompletion, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.config, IsConfigError(tt.err))
			assert.Equal(t, tt.input, IsInputError(tt.err))
		})
	}
}

func TestNewConfigError_Nil(t *testing.T) {
	assert.NoError(t, NewConfigError("op", nil))
}
