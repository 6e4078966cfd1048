package page

import (
	"strings"

	"github.com/saulo-duarte/studycentre/internal/quiz"
	"github.com/saulo-duarte/studycentre/internal/seo"
	util "github.com/saulo-duarte/studycentre/internal/utils"
)

type Course struct {
	Slug        string `json:"slug" yaml:"slug"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Level       string `json:"level,omitempty" yaml:"level"`
}

type Page struct {
	Slug           string               `json:"slug" yaml:"slug"`
	Kind           Kind                 `json:"kind" yaml:"kind"`
	Course         string               `json:"course,omitempty" yaml:"course"`
	Module         int                  `json:"module,omitempty" yaml:"module"`
	Section        int                  `json:"section,omitempty" yaml:"section"`
	Title          string               `json:"title" yaml:"title"`
	Heading        string               `json:"heading,omitempty" yaml:"heading"`
	Description    string               `json:"description" yaml:"description"`
	Outcomes       []string             `json:"outcomes,omitempty" yaml:"outcomes"`
	Sections       []Section            `json:"sections,omitempty" yaml:"sections"`
	InlineChecks   []quiz.Question      `json:"inline_checks,omitempty" yaml:"inline_checks"`
	FAQs           []FAQ                `json:"faqs,omitempty" yaml:"faqs"`
	Quiz           *quiz.Quiz           `json:"quiz,omitempty" yaml:"quiz"`
	Back           *Link                `json:"back,omitempty" yaml:"back"`
	Prev           *Link                `json:"prev,omitempty" yaml:"prev"`
	Next           *Link                `json:"next,omitempty" yaml:"next"`
	StructuredData []seo.StructuredData `json:"structured_data,omitempty" yaml:"structured_data"`
	LastReviewed   util.LocalDate       `json:"last_reviewed" yaml:"last_reviewed"`
}

type Section struct {
	ID         string            `json:"id,omitempty" yaml:"id"`
	Heading    string            `json:"heading" yaml:"heading"`
	Paragraphs []string          `json:"paragraphs,omitempty" yaml:"paragraphs"`
	Bullets    []string          `json:"bullets,omitempty" yaml:"bullets"`
	Table      *Table            `json:"table,omitempty" yaml:"table"`
	Callout    string            `json:"callout,omitempty" yaml:"callout"`
	Checks     []quiz.QuestionID `json:"checks,omitempty" yaml:"checks"`
}

type Table struct {
	Caption string     `json:"caption,omitempty" yaml:"caption"`
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Link points at a sibling page by relative slug, e.g. "../coshh-module-1".
type Link struct {
	Label string `json:"label" yaml:"label"`
	To    string `json:"to" yaml:"to"`
}

// Target is the slug the link resolves to.
func (l Link) Target() string {
	to := strings.TrimSpace(l.To)
	for strings.HasPrefix(to, "../") {
		to = strings.TrimPrefix(to, "../")
	}
	to = strings.TrimPrefix(to, "./")
	to = strings.TrimPrefix(to, "/pages/")
	return strings.Trim(to, "/")
}

type QuestionBank struct {
	Slug        string          `json:"slug" yaml:"slug"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description,omitempty" yaml:"description"`
	Course      string          `json:"course,omitempty" yaml:"course"`
	Categories  []string        `json:"categories,omitempty" yaml:"categories"`

	// Exam rules; zero values fall back to the service defaults.
	TotalQuestions int             `json:"total_questions,omitempty" yaml:"total_questions"`
	PassThreshold  int             `json:"pass_threshold,omitempty" yaml:"pass_threshold"`
	TimeLimit      int             `json:"time_limit,omitempty" yaml:"time_limit"`
	Questions      []quiz.Question `json:"questions" yaml:"questions"`
}

// Exam is the bank as the quiz package draws from it.
func (b *QuestionBank) Exam() quiz.Exam {
	return quiz.Exam{
		Title:          b.Title,
		Questions:      b.Questions,
		Categories:     b.Categories,
		TotalQuestions: b.TotalQuestions,
		PassThreshold:  b.PassThreshold,
		TimeLimit:      b.TimeLimit,
	}
}

// Library is the full set of authored content.
type Library struct {
	Courses []Course
	Pages   []*Page
	Banks   []*QuestionBank
}

func (p *Page) Metadata(siteURL string) seo.Metadata {
	return seo.Metadata{
		Title:          p.Title,
		Description:    p.Description,
		Canonical:      siteURL + "/pages/" + p.Slug,
		StructuredData: p.StructuredData,
	}
}

func (p *Page) InlineCheck(id quiz.QuestionID) (quiz.Question, bool) {
	for _, q := range p.InlineChecks {
		if q.ID == id {
			return q, true
		}
	}
	return quiz.Question{}, false
}

// DisplayHeading falls back to the title when no heading is authored.
func (p *Page) DisplayHeading() string {
	if p.Heading != "" {
		return p.Heading
	}
	return p.Title
}
