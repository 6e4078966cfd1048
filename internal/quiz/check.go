package quiz

import "fmt"

// Unanswered marks a Result whose question has no selection yet.
const Unanswered = -1

type Result struct {
	QuestionID    QuestionID `json:"question_id"`
	Answered      bool       `json:"answered"`
	SelectedIndex int        `json:"selected_index"`
	IsCorrect     bool       `json:"is_correct"`
	CorrectIndex  int        `json:"correct_index"`
	Explanation   string     `json:"explanation,omitempty"`
}

// Check tracks the selection for a single question. Re-selection is
// allowed; the latest choice wins.
type Check struct {
	question Question
	selected int
}

func NewCheck(q Question) *Check {
	return &Check{question: q, selected: Unanswered}
}

func (c *Check) Question() Question {
	return c.question
}

func (c *Check) Select(i int) (Result, error) {
	if !c.question.HasOption(i) {
		return c.State(), fmt.Errorf("question %s: %w: %d", c.question.ID, ErrOptionOutOfRange, i)
	}
	c.selected = i
	return c.State(), nil
}

func (c *Check) Answered() bool {
	return c.selected != Unanswered
}

func (c *Check) State() Result {
	if !c.Answered() {
		return Result{
			QuestionID:    c.question.ID,
			SelectedIndex: Unanswered,
			CorrectIndex:  Unanswered,
		}
	}
	return Result{
		QuestionID:    c.question.ID,
		Answered:      true,
		SelectedIndex: c.selected,
		IsCorrect:     c.question.IsCorrect(c.selected),
		CorrectIndex:  c.question.CorrectIndex,
		Explanation:   c.question.Explanation,
	}
}
