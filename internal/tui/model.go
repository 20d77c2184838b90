package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

// Asker is the TUI-facing subset of the question pipeline.
type Asker interface {
	Ask(ctx context.Context, session domain.Session, query string) (domain.Session, domain.Answer, error)
}

type state int

const (
	stateIdle state = iota
	stateProcessing
)

const digestRunes = 90

type answerMsg struct {
	session domain.Session
	answer  domain.Answer
}

type errMsg struct{ err error }

// Model is the Bubble Tea model of the chat interface. Only one question is
// in flight at a time; input is ignored until it completes.
type Model struct {
	ctx        context.Context
	asker      Asker
	summarizer domain.Summarizer
	title      string

	session     domain.Session
	state       state
	pending     string
	err         error
	fatal       error
	showContext bool
	input       textinput.Model
	viewport    viewport.Model
	spinner     spinner.Model
	ready       bool
}

// New creates a chat model for session. title is shown in the header.
// summarizer may be nil, in which case sources are shown untrimmed.
func New(ctx context.Context, asker Asker, summarizer domain.Summarizer, session domain.Session, title string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about Java and press Enter"
	ti.CharLimit = 0
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctx:        ctx,
		asker:      asker,
		summarizer: summarizer,
		title:      title,
		session:    session,
		input:      ti,
		viewport:   viewport.New(0, 0),
		spinner:    sp,
	}
}

// Session returns the current session value.
func (m Model) Session() domain.Session { return m.session }

// Err returns the configuration error that ended the program, if any.
func (m Model) Err() error { return m.fatal }

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and pipeline events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := historyBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 + 1 // header, banner, input, help, spacer
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved-fh)
		m.input.Width = max(10, msg.Width-6)
		m.viewport.SetContent(m.renderHistory())
		return m, nil

	case answerMsg:
		m.state = stateIdle
		m.session = msg.session
		m.pending = ""
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoTop()
		return m, m.input.Focus()

	case errMsg:
		m.state = stateIdle
		m.err = msg.err
		// a misconfigured store or embedder fails every question
		if domain.IsConfigError(msg.err) {
			m.fatal = msg.err
			return m, tea.Quit
		}
		m.input.SetValue(m.pending)
		m.input.CursorEnd()
		m.pending = ""
		return m, m.input.Focus()

	case spinner.TickMsg:
		if m.state != stateProcessing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.KeyTab:
			m.showContext = !m.showContext
			m.viewport.SetContent(m.renderHistory())
			return m, nil
		}
		if m.state == stateProcessing {
			return m, nil
		}
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts the pipeline for the current input. Blank input is ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.input.Value())
	if q == "" {
		return m, nil
	}
	m.state = stateProcessing
	m.pending = q
	m.err = nil
	m.input.Reset()
	m.input.Blur()
	return m, tea.Batch(m.spinner.Tick, m.askCmd(m.session, q))
}

func (m Model) askCmd(session domain.Session, q string) tea.Cmd {
	asker, ctx := m.asker, m.ctx
	return func() tea.Msg {
		next, answer, err := asker.Ask(ctx, session, q)
		if err != nil {
			return errMsg{err}
		}
		return answerMsg{session: next, answer: answer}
	}
}

// View renders the header, error banner, history and input line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.title))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(historyBoxStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	if m.state == stateProcessing {
		b.WriteString(inputBoxStyle.Render(m.spinner.View() + " Searching the textbook and generating an answer for " + fmt.Sprintf("%q", m.pending)))
	} else {
		b.WriteString(inputBoxStyle.Render(m.input.View()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: ask • tab: show/hide context • pgup/pgdown: scroll • esc: quit"))
	return b.String()
}

// renderHistory lists exchanges newest first.
func (m Model) renderHistory() string {
	history := m.session.History()
	if len(history) == 0 {
		return mutedStyle.Render("No questions yet. Ask anything covered by the textbook.")
	}
	width := max(20, m.viewport.Width-2)
	body := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for i := len(history) - 1; i >= 0; i-- {
		ex := history[i]
		b.WriteString(questionStyle.Render(fmt.Sprintf("Q%d: %s", i+1, ex.Question)))
		b.WriteString("\n")
		b.WriteString(body.Render(ex.Answer.Text))
		b.WriteString("\n")
		if len(ex.Answer.Sources) > 0 {
			b.WriteString(mutedStyle.Render("Sources:"))
			b.WriteString("\n")
			expand := m.showContext && i == len(history)-1
			for rank, src := range ex.Answer.Sources {
				b.WriteString(mutedStyle.Render(m.sourceLine(rank+1, src)))
				b.WriteString("\n")
				if expand {
					b.WriteString(contextStyle.Width(width).Render(src.Chunk.Text))
					b.WriteString("\n")
				}
			}
		}
		if i > 0 {
			b.WriteString(separatorStyle.Render(strings.Repeat("─", min(width, 40))))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) sourceLine(rank int, src domain.SearchResult) string {
	page := "p.?"
	if src.Chunk.PageNumber > 0 {
		page = fmt.Sprintf("p.%d", src.Chunk.PageNumber)
	}
	text := strings.Join(strings.Fields(src.Chunk.Text), " ")
	if m.summarizer != nil {
		text = m.summarizer.Digest(text, digestRunes)
	}
	return fmt.Sprintf("  [%d] %-5s %.4f  %s", rank, page, src.Score, text)
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	questionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	separatorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	spinnerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	contextStyle    = lipgloss.NewStyle().PaddingLeft(4)
	historyBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
