package quiz

import "fmt"

type Score struct {
	Correct  int `json:"correct"`
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

func (s Score) String() string {
	return fmt.Sprintf("%d / %d", s.Correct, s.Total)
}

func (s Score) Complete() bool {
	return s.Total > 0 && s.Answered == s.Total
}

func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Correct * 100 / s.Total
}

// Passes reports whether the correct share reaches threshold percent.
// An empty score never passes.
func (s Score) Passes(threshold int) bool {
	return s.Total > 0 && s.Correct*100 >= threshold*s.Total
}

// View is the render model of one question inside a quiz.
type View struct {
	Number  int        `json:"number"`
	ID      QuestionID `json:"id"`
	Prompt  string     `json:"question"`
	Options []string   `json:"options"`
	Result  Result     `json:"result"`
}

// Sequencer owns one Check per question of a quiz. Checks are independent:
// selecting on one never changes another.
type Sequencer struct {
	title  string
	checks []*Check
	index  map[QuestionID]int
}

func NewSequencer(q Quiz) *Sequencer {
	s := &Sequencer{
		title:  q.Title,
		checks: make([]*Check, 0, len(q.Questions)),
		index:  make(map[QuestionID]int, len(q.Questions)),
	}
	for i, question := range q.Questions {
		s.checks = append(s.checks, NewCheck(question))
		if _, dup := s.index[question.ID]; !dup {
			s.index[question.ID] = i
		}
	}
	return s
}

func (s *Sequencer) Title() string {
	return s.title
}

func (s *Sequencer) Len() int {
	return len(s.checks)
}

func (s *Sequencer) Empty() bool {
	return len(s.checks) == 0
}

func (s *Sequencer) Select(id QuestionID, option int) (Result, error) {
	c, err := s.check(id)
	if err != nil {
		return Result{}, err
	}
	return c.Select(option)
}

// Apply replays a set of selections. The order of application does not
// matter because checks share no state.
func (s *Sequencer) Apply(answers map[QuestionID]int) error {
	for id, option := range answers {
		if _, err := s.Select(id, option); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequencer) Result(id QuestionID) (Result, error) {
	c, err := s.check(id)
	if err != nil {
		return Result{}, err
	}
	return c.State(), nil
}

func (s *Sequencer) Results() []Result {
	out := make([]Result, 0, len(s.checks))
	for _, c := range s.checks {
		out = append(out, c.State())
	}
	return out
}

// Answers returns the current selections keyed by question id.
func (s *Sequencer) Answers() map[QuestionID]int {
	out := make(map[QuestionID]int)
	for _, c := range s.checks {
		if c.Answered() {
			out[c.question.ID] = c.selected
		}
	}
	return out
}

func (s *Sequencer) Score() Score {
	score := Score{Total: len(s.checks)}
	for _, c := range s.checks {
		if !c.Answered() {
			continue
		}
		score.Answered++
		if c.State().IsCorrect {
			score.Correct++
		}
	}
	return score
}

// RenderAll returns one view per question in authoring order.
func (s *Sequencer) RenderAll() []View {
	views := make([]View, 0, len(s.checks))
	for i, c := range s.checks {
		views = append(views, View{
			Number:  i + 1,
			ID:      c.question.ID,
			Prompt:  c.question.Prompt,
			Options: c.question.Options,
			Result:  c.State(),
		})
	}
	return views
}

func (s *Sequencer) check(id QuestionID) (*Check, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}
	return s.checks[i], nil
}

// Grade scores a full answer sheet in one pass.
func Grade(q Quiz, answers map[QuestionID]int) (Score, []Result, error) {
	seq := NewSequencer(q)
	if err := seq.Apply(answers); err != nil {
		return Score{}, nil, err
	}
	return seq.Score(), seq.Results(), nil
}
