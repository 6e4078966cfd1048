package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saulo-duarte/studycentre/internal/quiz"
)

// Run drives the quiz until the user quits and returns the final score.
func Run(q quiz.Quiz, in io.Reader, out io.Writer, opts Options) (quiz.Score, error) {
	program := tea.NewProgram(NewModel(q, opts), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return quiz.Score{}, err
	}
	return final.(Model).Score(), nil
}
