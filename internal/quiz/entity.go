package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuestionID accepts both string and numeric ids in authored content.
type QuestionID string

func (id *QuestionID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = QuestionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("question id must be a string or a number: %w", err)
	}
	*id = QuestionID(n.String())
	return nil
}

func (id *QuestionID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: question id must be a scalar", value.Line)
	}
	*id = QuestionID(value.Value)
	return nil
}

type Question struct {
	ID           QuestionID `json:"id" yaml:"id"`
	Prompt       string     `json:"question" yaml:"question"`
	Options      []string   `json:"options" yaml:"options"`
	CorrectIndex int        `json:"correct_index" yaml:"correct_index"`
	Explanation  string     `json:"explanation,omitempty" yaml:"explanation"`
	Category     string     `json:"category,omitempty" yaml:"category"`
	Difficulty   Difficulty `json:"difficulty,omitempty" yaml:"difficulty"`
}

// NewQuestion builds a Question, rejecting malformed authoring data.
func NewQuestion(id QuestionID, prompt string, options []string, correctIndex int, explanation string) (Question, error) {
	q := Question{
		ID:           id,
		Prompt:       prompt,
		Options:      append([]string(nil), options...),
		CorrectIndex: correctIndex,
		Explanation:  explanation,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (q Question) Validate() error {
	if strings.TrimSpace(string(q.ID)) == "" {
		return ErrMissingQuestionID
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("question %s: %w", q.ID, ErrEmptyPrompt)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %s: %w", q.ID, ErrTooFewOptions)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %s: %w (%d of %d)", q.ID, ErrCorrectIndexOutOfRange, q.CorrectIndex, len(q.Options))
	}
	return nil
}

// IsCorrect reports whether option i is the right answer. An out-of-range
// CorrectIndex is never correct.
func (q Question) IsCorrect(i int) bool {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return false
	}
	return i == q.CorrectIndex
}

func (q Question) HasOption(i int) bool {
	return i >= 0 && i < len(q.Options)
}

type Quiz struct {
	Title     string     `json:"title,omitempty" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// NewQuiz validates every question and rejects duplicate ids.
func NewQuiz(title string, questions []Question) (Quiz, error) {
	q := Quiz{Title: title, Questions: append([]Question(nil), questions...)}
	if err := q.Validate(); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (q Quiz) Validate() error {
	seen := make(map[QuestionID]struct{}, len(q.Questions))
	for _, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return err
		}
		if _, dup := seen[question.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateQuestionID, question.ID)
		}
		seen[question.ID] = struct{}{}
	}
	return nil
}

func (q Quiz) Len() int {
	return len(q.Questions)
}

func (q Quiz) Question(id QuestionID) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

// PublicQuestion is a question without its answer, safe to send before the
// learner has chosen.
type PublicQuestion struct {
	ID       QuestionID `json:"id"`
	Prompt   string     `json:"question"`
	Options  []string   `json:"options"`
	Category string     `json:"category,omitempty"`
}

func (q Question) Public() PublicQuestion {
	return PublicQuestion{ID: q.ID, Prompt: q.Prompt, Options: q.Options, Category: q.Category}
}

type PublicQuiz struct {
	Title     string           `json:"title,omitempty"`
	Questions []PublicQuestion `json:"questions"`
}

func (q Quiz) Public() PublicQuiz {
	out := PublicQuiz{Title: q.Title, Questions: make([]PublicQuestion, 0, len(q.Questions))}
	for _, question := range q.Questions {
		out.Questions = append(out.Questions, question.Public())
	}
	return out
}
