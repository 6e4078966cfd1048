package page

import (
	"html/template"
	"strconv"

	"github.com/saulo-duarte/studycentre/internal/quiz"
	"github.com/saulo-duarte/studycentre/internal/seo"
	"github.com/sirupsen/logrus"
)

// ViewState is the learner's input carried by a form post. Nothing here is
// stored; a plain GET renders every widget unanswered.
type ViewState struct {
	Checks        map[quiz.QuestionID]int
	Quiz          map[quiz.QuestionID]int
	QuizSubmitted bool
}

type Crumb struct {
	Label string
	Href  string
}

type NavLink struct {
	Label string
	Href  string
}

type OptionView struct {
	Index    int
	Label    string
	Selected bool
	Correct  bool
}

type CheckView struct {
	Number   int
	ID       quiz.QuestionID
	Prompt   string
	Options  []OptionView
	Result   quiz.Result
	Action   string
	Answered bool
}

type SectionView struct {
	Section
	Checks []CheckView
}

type QuizView struct {
	Title     string
	Action    string
	Questions []CheckView
	Score     quiz.Score
	Submitted bool
	Empty     bool
}

type PageView struct {
	Head           seo.Metadata
	Scripts        []template.JS
	Slug           string
	Kind           Kind
	Heading        string
	Breadcrumbs    []Crumb
	Outcomes       []string
	Sections       []SectionView
	TrailingChecks []CheckView
	FAQs           []FAQ
	Quiz           *QuizView
	Back           *NavLink
	Prev           *NavLink
	Next           *NavLink
	LastReviewed   string
}

// BuildView assembles the page shell. Inline checks follow the section that
// names them; checks no section names are placed after the last section.
// A quiz that fails validation is left out so the rest of the page still
// renders.
func BuildView(p *Page, course *Course, head *seo.Head, state ViewState, log logrus.FieldLogger) (*PageView, error) {
	meta := head.Current()
	v := &PageView{
		Head:         meta,
		Slug:         p.Slug,
		Kind:         p.Kind,
		Heading:      p.DisplayHeading(),
		Breadcrumbs:  breadcrumbs(p, course),
		Outcomes:     p.Outcomes,
		FAQs:         p.FAQs,
		Back:         navLink(p.Back),
		Prev:         navLink(p.Prev),
		Next:         navLink(p.Next),
		LastReviewed: p.LastReviewed.String(),
	}
	for _, d := range meta.StructuredData {
		v.Scripts = append(v.Scripts, template.JS(d.Script()))
	}

	placed := make(map[quiz.QuestionID]bool)
	number := 0
	for _, sec := range p.Sections {
		sv := SectionView{Section: sec}
		for _, id := range sec.Checks {
			q, ok := p.InlineCheck(id)
			if !ok || placed[id] {
				continue
			}
			placed[id] = true
			number++
			cv, err := checkView(p.Slug, number, q, state.Checks)
			if err != nil {
				return nil, err
			}
			sv.Checks = append(sv.Checks, cv)
		}
		v.Sections = append(v.Sections, sv)
	}
	for _, q := range p.InlineChecks {
		if placed[q.ID] {
			continue
		}
		number++
		cv, err := checkView(p.Slug, number, q, state.Checks)
		if err != nil {
			return nil, err
		}
		v.TrailingChecks = append(v.TrailingChecks, cv)
	}

	if p.Quiz != nil {
		if err := p.Quiz.Validate(); err != nil {
			log.WithError(err).WithField("slug", p.Slug).Warn("Skipping invalid quiz")
		} else {
			qv, err := quizView(p.Slug, *p.Quiz, state)
			if err != nil {
				return nil, err
			}
			v.Quiz = qv
		}
	}
	return v, nil
}

func checkView(slug string, number int, q quiz.Question, answers map[quiz.QuestionID]int) (CheckView, error) {
	c := quiz.NewCheck(q)
	if option, ok := answers[q.ID]; ok {
		if _, err := c.Select(option); err != nil {
			return CheckView{}, err
		}
	}
	return newCheckView(number, q, c.State(), "/pages/"+slug+"/checks/"+string(q.ID)), nil
}

func quizView(slug string, q quiz.Quiz, state ViewState) (*QuizView, error) {
	seq := quiz.NewSequencer(q)
	if state.QuizSubmitted {
		if err := seq.Apply(state.Quiz); err != nil {
			return nil, err
		}
	}
	qv := &QuizView{
		Title:     seq.Title(),
		Action:    "/pages/" + slug + "/quiz",
		Score:     seq.Score(),
		Submitted: state.QuizSubmitted,
		Empty:     seq.Empty(),
	}
	for _, view := range seq.RenderAll() {
		question, _ := q.Question(view.ID)
		qv.Questions = append(qv.Questions, newCheckView(view.Number, question, view.Result, ""))
	}
	return qv, nil
}

func newCheckView(number int, q quiz.Question, res quiz.Result, action string) CheckView {
	cv := CheckView{
		Number:   number,
		ID:       q.ID,
		Prompt:   q.Prompt,
		Result:   res,
		Action:   action,
		Answered: res.Answered,
	}
	for i, label := range q.Options {
		cv.Options = append(cv.Options, OptionView{
			Index:    i,
			Label:    label,
			Selected: res.Answered && res.SelectedIndex == i,
			Correct:  res.Answered && q.IsCorrect(i),
		})
	}
	return cv
}

func breadcrumbs(p *Page, course *Course) []Crumb {
	crumbs := []Crumb{{Label: "Study Centre", Href: "/"}}
	if course != nil {
		crumbs = append(crumbs, Crumb{Label: course.Title})
	}
	if p.Module > 0 {
		crumbs = append(crumbs, Crumb{Label: "Module " + strconv.Itoa(p.Module)})
	}
	if p.Section > 0 {
		crumbs = append(crumbs, Crumb{Label: "Section " + strconv.Itoa(p.Section)})
	}
	return crumbs
}

func navLink(l *Link) *NavLink {
	if l == nil || l.Target() == "" {
		return nil
	}
	return &NavLink{Label: l.Label, Href: "/pages/" + l.Target()}
}
