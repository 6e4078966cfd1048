package page

import (
	"github.com/saulo-duarte/studycentre/internal/quiz"
	"github.com/saulo-duarte/studycentre/internal/seo"
	util "github.com/saulo-duarte/studycentre/internal/utils"
)

type CourseSummary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level,omitempty"`
	Pages       int    `json:"pages"`
}

type CourseDetail struct {
	Course Course        `json:"course"`
	Pages  []PageSummary `json:"pages"`
}

type PageSummary struct {
	Slug          string         `json:"slug"`
	Kind          Kind           `json:"kind"`
	Module        int            `json:"module,omitempty"`
	Section       int            `json:"section,omitempty"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	QuizQuestions int            `json:"quiz_questions"`
	InlineChecks  int            `json:"inline_checks"`
	LastReviewed  util.LocalDate `json:"last_reviewed"`
}

// PageResponse is a page with every answer stripped out.
type PageResponse struct {
	Slug         string                `json:"slug"`
	Kind         Kind                  `json:"kind"`
	Course       string                `json:"course,omitempty"`
	Heading      string                `json:"heading"`
	Metadata     seo.Metadata          `json:"metadata"`
	Outcomes     []string              `json:"outcomes,omitempty"`
	Sections     []Section             `json:"sections,omitempty"`
	InlineChecks []quiz.PublicQuestion `json:"inline_checks,omitempty"`
	FAQs         []FAQ                 `json:"faqs,omitempty"`
	Quiz         *quiz.PublicQuiz      `json:"quiz,omitempty"`
	Back         *Link                 `json:"back,omitempty"`
	Prev         *Link                 `json:"prev,omitempty"`
	Next         *Link                 `json:"next,omitempty"`
	LastReviewed util.LocalDate        `json:"last_reviewed"`
}

type BankSummary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Course      string `json:"course,omitempty"`
	Questions   int    `json:"questions"`

	Categories     map[string]int `json:"categories,omitempty"`
	TotalQuestions int            `json:"total_questions"`
	PassThreshold  int            `json:"pass_threshold,omitempty"`
	TimeLimit      int            `json:"time_limit,omitempty"`
}

func toSummary(p *Page) PageSummary {
	s := PageSummary{
		Slug:         p.Slug,
		Kind:         p.Kind,
		Module:       p.Module,
		Section:      p.Section,
		Title:        p.Title,
		Description:  p.Description,
		InlineChecks: len(p.InlineChecks),
		LastReviewed: p.LastReviewed,
	}
	if p.Quiz != nil {
		s.QuizQuestions = p.Quiz.Len()
	}
	return s
}

func toResponse(p *Page, siteURL string) *PageResponse {
	resp := &PageResponse{
		Slug:         p.Slug,
		Kind:         p.Kind,
		Course:       p.Course,
		Heading:      p.DisplayHeading(),
		Metadata:     p.Metadata(siteURL),
		Outcomes:     p.Outcomes,
		Sections:     p.Sections,
		FAQs:         p.FAQs,
		Back:         p.Back,
		Prev:         p.Prev,
		Next:         p.Next,
		LastReviewed: p.LastReviewed,
	}
	for _, q := range p.InlineChecks {
		resp.InlineChecks = append(resp.InlineChecks, q.Public())
	}
	if p.Quiz != nil {
		pub := p.Quiz.Public()
		resp.Quiz = &pub
	}
	return resp
}
