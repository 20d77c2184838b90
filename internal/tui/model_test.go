package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
	"github.com/Nithin345256/LLM-based-java-chatbot/internal/summarizer"
)

type fakeAsker struct {
	calls int
	err   error
}

func (f *fakeAsker) Ask(_ context.Context, s domain.Session, q string) (domain.Session, domain.Answer, error) {
	f.calls++
	if f.err != nil {
		return s, domain.Answer{}, f.err
	}
	a := domain.Answer{Text: "answer to " + q, Sources: []domain.SearchResult{
		{Chunk: domain.Chunk{Text: "A class is a blueprint for objects.", PageNumber: 12}, Score: 0.9},
	}}
	return s.Append(domain.Exchange{Question: q, Answer: a}), a, nil
}

func newModel(a Asker) Model {
	m := New(context.Background(), a, summarizer.NewFrequencySummarizer(), domain.NewSession(), "Java Tutor")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func enter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestSubmit_EmptyInputIgnored(t *testing.T) {
	a := &fakeAsker{}
	m := newModel(a)
	m.input.SetValue("   ")

	m, cmd := enter(m)
	assert.Nil(t, cmd)
	assert.Equal(t, stateIdle, m.state)
	assert.Zero(t, a.calls)
}

func TestSubmit_EntersProcessingAndIgnoresInput(t *testing.T) {
	a := &fakeAsker{}
	m := newModel(a)
	m.input.SetValue("What is a class?")

	m, cmd := enter(m)
	require.NotNil(t, cmd)
	assert.Equal(t, stateProcessing, m.state)
	assert.Equal(t, "What is a class?", m.pending)
	assert.False(t, m.input.Focused())
	assert.Contains(t, m.View(), "Searching the textbook")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.input.Value())

	m, cmd = enter(m)
	assert.Nil(t, cmd)
	assert.Equal(t, stateProcessing, m.state)
}

func TestAnswer_UpdatesSessionNewestFirst(t *testing.T) {
	a := &fakeAsker{}
	m := newModel(a)

	for _, q := range []string{"What is a class?", "What is an object?"} {
		msg := m.askCmd(m.session, q)()
		require.IsType(t, answerMsg{}, msg)
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	assert.Equal(t, stateIdle, m.state)
	assert.Equal(t, 2, m.Session().Len())
	assert.True(t, m.input.Focused())

	h := m.renderHistory()
	first := strings.Index(h, "What is a class?")
	second := strings.Index(h, "What is an object?")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, second, first)
	assert.Contains(t, h, "p.12")
	assert.Contains(t, h, "0.9000")
}

func TestError_ShowsBannerAndRestoresInput(t *testing.T) {
	a := &fakeAsker{err: errors.New("generation endpoint timed out")}
	m := newModel(a)
	m.input.SetValue("What is a class?")
	m, _ = enter(m)

	next, _ := m.Update(m.askCmd(m.session, "What is a class?")())
	m = next.(Model)
	assert.Equal(t, stateIdle, m.state)
	assert.Contains(t, m.View(), "generation endpoint timed out")
	assert.Equal(t, "What is a class?", m.input.Value())
	assert.Equal(t, 0, m.Session().Len())

	m.input.SetValue("retry")
	m, _ = enter(m)
	assert.Nil(t, m.err)
}

func TestQuitKeys(t *testing.T) {
	m := newModel(&fakeAsker{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestError_ConfigErrorQuits(t *testing.T) {
	mismatch := fmt.Errorf("retrieve: %w", domain.ErrDimensionMismatch)
	a := &fakeAsker{err: mismatch}
	m := newModel(a)
	m.input.SetValue("What is a class?")
	m, _ = enter(m)

	next, cmd := m.Update(m.askCmd(m.session, "What is a class?")())
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, m.Err(), domain.ErrDimensionMismatch)
}

func TestError_TransientKeepsRunning(t *testing.T) {
	m := newModel(&fakeAsker{})
	next, _ := m.Update(errMsg{errors.New("quota exceeded")})
	m = next.(Model)
	assert.NoError(t, m.Err())
	assert.Equal(t, stateIdle, m.state)
}

func TestTab_TogglesFullContextOfNewestExchange(t *testing.T) {
	m := newModel(&fakeAsker{})
	next, _ := m.Update(m.askCmd(m.session, "What is a class?")())
	m = next.(Model)

	full := "A class is a blueprint for objects."
	assert.Equal(t, 1, strings.Count(m.renderHistory(), full))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.True(t, m.showContext)
	assert.Equal(t, 2, strings.Count(m.renderHistory(), full))

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.False(t, m.showContext)
	assert.Equal(t, 1, strings.Count(m.renderHistory(), full))
}
