// Package tui runs a quiz in the terminal with Bubble Tea.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saulo-duarte/studycentre/internal/quiz"
)

// Model steps through the questions of one quiz. Answers are kept only in
// the underlying sequencer and are gone when the program exits.
type Model struct {
	seq      *quiz.Sequencer
	views    []quiz.View
	current  int
	cursor   []int
	keys     keyMap
	help     help.Model
	width    int
	quitting bool
	noColor  bool
}

// Options configures the quiz model.
type Options struct {
	NoColor bool
}

// NewModel builds a model over a fresh sequencer for q.
func NewModel(q quiz.Quiz, opts Options) Model {
	seq := quiz.NewSequencer(q)
	return Model{
		seq:     seq,
		views:   seq.RenderAll(),
		cursor:  make([]int, seq.Len()),
		keys:    defaultKeys(),
		help:    help.New(),
		noColor: opts.NoColor,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.help.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.seq.Empty() {
		return m, nil
	}

	options := len(m.views[m.current].Options)
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.current] > 0 {
			m.cursor[m.current]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.current] < options-1 {
			m.cursor[m.current]++
		}
	case key.Matches(msg, m.keys.Prev):
		if m.current > 0 {
			m.current--
		}
	case key.Matches(msg, m.keys.Next):
		if m.current < len(m.views)-1 {
			m.current++
		}
	case key.Matches(msg, m.keys.Select):
		m = m.answer()
	}
	return m, nil
}

// answer records the highlighted option for the current question. The
// cursor never leaves the option range, so Select cannot fail here.
func (m Model) answer() Model {
	view := m.views[m.current]
	if _, err := m.seq.Select(view.ID, m.cursor[m.current]); err != nil {
		return m
	}
	m.views = m.seq.RenderAll()
	return m
}

func (m Model) View() string {
	if m.quitting {
		return renderSummary(m.seq.Score(), m.noColor) + "\n"
	}
	if m.seq.Empty() {
		return lipgloss.JoinVertical(lipgloss.Left,
			renderTitle(m.seq.Title(), m.noColor),
			"No questions available.",
			"",
			m.help.View(m.keys),
		)
	}

	view := m.views[m.current]
	blocks := []string{
		renderTitle(m.seq.Title(), m.noColor),
		renderProgress(view.Number, len(m.views), m.noColor),
		"",
		renderPrompt(view.Prompt, m.width, m.noColor),
		renderOptions(view, m.cursor[m.current], m.noColor),
	}
	if view.Result.Answered {
		blocks = append(blocks, "", renderFeedback(view.Result, m.width, m.noColor))
	}
	blocks = append(blocks, "", renderSummary(m.seq.Score(), m.noColor), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// Score reports the running score.
func (m Model) Score() quiz.Score {
	return m.seq.Score()
}

// Current is the zero-based index of the question on screen.
func (m Model) Current() int {
	return m.current
}
