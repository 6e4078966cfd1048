package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/saulo-duarte/studycentre/internal/quiz"
)

var (
	colorTitle   = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("242")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("203")
	colorCursor  = lipgloss.Color("212")
)

func renderTitle(title string, noColor bool) string {
	if title == "" {
		title = "Quiz"
	}
	if noColor {
		return title
	}
	return lipgloss.NewStyle().Bold(true).Foreground(colorTitle).Render(title)
}

func renderProgress(number, total int, noColor bool) string {
	return stylize(fmt.Sprintf("Question %d of %d", number, total), noColor, colorMuted)
}

func renderPrompt(prompt string, width int, noColor bool) string {
	style := lipgloss.NewStyle()
	if width > 0 {
		style = style.Width(width)
	}
	if !noColor {
		style = style.Bold(true)
	}
	return style.Render(prompt)
}

// renderOptions marks the highlighted option with ">" and the recorded
// answer with "(x)".
func renderOptions(view quiz.View, cursor int, noColor bool) string {
	lines := make([]string, 0, len(view.Options))
	for i, option := range view.Options {
		pointer := "  "
		if i == cursor {
			pointer = "> "
		}
		mark := "( )"
		if view.Result.Answered && view.Result.SelectedIndex == i {
			mark = "(x)"
		}
		line := fmt.Sprintf("%s%s %s", pointer, mark, option)
		if i == cursor {
			line = stylize(line, noColor, colorCursor)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderFeedback(result quiz.Result, width int, noColor bool) string {
	verdict := stylize("Not quite", noColor, colorWrong)
	if result.IsCorrect {
		verdict = stylize("Correct", noColor, colorCorrect)
	}
	if result.Explanation == "" {
		return verdict
	}
	style := lipgloss.NewStyle()
	if width > 0 {
		style = style.Width(width)
	}
	return verdict + "\n" + style.Render(result.Explanation)
}

func renderSummary(score quiz.Score, noColor bool) string {
	line := "Score: " + score.String()
	if score.Complete() {
		line += fmt.Sprintf(" (%d%%)", score.Percent())
	}
	return stylize(line, noColor, colorMuted)
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
