package content

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/studycentre/internal/page"
	"github.com/saulo-duarte/studycentre/internal/quiz"
)

// Validate records every authoring defect in report and returns a copy of
// lib with the defective parts removed. files maps page slugs (and
// "bank:<slug>") to the file they came from; it may be nil.
func Validate(lib *page.Library, report *Report, files map[string]string) *page.Library {
	fileOf := func(key string) string {
		if f, ok := files[key]; ok {
			return f
		}
		return key
	}

	out := &page.Library{}

	courses := make(map[string]bool)
	for _, c := range lib.Courses {
		switch {
		case c.Slug == "":
			report.add(SeverityError, coursesFile, "slug", "course %q has no slug", c.Title)
			continue
		case courses[c.Slug]:
			report.add(SeverityError, coursesFile, "slug", "duplicate course %s", c.Slug)
			continue
		case c.Title == "":
			report.add(SeverityWarning, coursesFile, "title", "course %s has no title", c.Slug)
		}
		courses[c.Slug] = true
		out.Courses = append(out.Courses, c)
	}

	slugs := make(map[string]bool)
	for _, p := range lib.Pages {
		file := fileOf(p.Slug)
		if slugs[p.Slug] {
			report.add(SeverityError, file, "slug", "duplicate page slug %s", p.Slug)
			continue
		}
		slugs[p.Slug] = true
		out.Pages = append(out.Pages, validatePage(p, courses, report, file))
	}

	for _, p := range out.Pages {
		file := fileOf(p.Slug)
		links := []struct {
			field string
			link  *page.Link
		}{{"back", p.Back}, {"prev", p.Prev}, {"next", p.Next}}
		for _, l := range links {
			if l.link == nil {
				continue
			}
			target := l.link.Target()
			if target != "" && !slugs[target] {
				report.add(SeverityWarning, file, l.field, "link %q points at unknown page %s", l.link.To, target)
			}
		}
	}

	banks := make(map[string]bool)
	for _, b := range lib.Banks {
		file := fileOf("bank:" + b.Slug)
		if banks[b.Slug] {
			report.add(SeverityError, file, "slug", "duplicate bank slug %s", b.Slug)
			continue
		}
		banks[b.Slug] = true

		clean := *b
		clean.Questions = validQuestions(b.Questions, report, file, "questions")
		if len(clean.Questions) == 0 {
			report.add(SeverityError, file, "questions", "bank has no usable questions")
			continue
		}
		if b.Course != "" && !courses[b.Course] {
			report.add(SeverityWarning, file, "course", "unknown course %s", b.Course)
		}
		validateExamRules(&clean, report, file)
		out.Banks = append(out.Banks, &clean)
	}

	page.SortPages(out.Pages)
	return out
}

func validatePage(p *page.Page, courses map[string]bool, report *Report, file string) *page.Page {
	clean := *p

	if !p.Kind.IsValid() {
		if p.Kind != "" {
			report.add(SeverityError, file, "kind", "unknown page kind %q", p.Kind)
		}
		clean.Kind = page.KindSection
	}
	if strings.TrimSpace(p.Title) == "" {
		report.add(SeverityError, file, "title", "page has no title")
	}
	if strings.TrimSpace(p.Description) == "" {
		report.add(SeverityWarning, file, "description", "page has no description")
	}
	if p.Course != "" && !courses[p.Course] {
		report.add(SeverityWarning, file, "course", "unknown course %s", p.Course)
	}
	if p.LastReviewed.IsZero() {
		report.add(SeverityWarning, file, "last_reviewed", "review date missing")
	}
	for _, w := range p.Metadata("").Warnings() {
		report.add(SeverityWarning, file, "metadata", "%s", w)
	}
	for i, d := range p.StructuredData {
		if d.Type() == "" {
			report.add(SeverityWarning, file, fmt.Sprintf("structured_data[%d]", i), "block has no @type")
		}
	}

	clean.InlineChecks = validQuestions(p.InlineChecks, report, file, "inline_checks")
	known := make(map[quiz.QuestionID]bool, len(clean.InlineChecks))
	for _, q := range clean.InlineChecks {
		known[q.ID] = true
	}

	clean.Sections = make([]page.Section, 0, len(p.Sections))
	for i, sec := range p.Sections {
		s := sec
		s.Checks = nil
		for _, id := range sec.Checks {
			if !known[id] {
				report.add(SeverityError, file, fmt.Sprintf("sections[%d].checks", i), "unknown inline check %s", id)
				continue
			}
			s.Checks = append(s.Checks, id)
		}
		if s.Table != nil {
			for r, row := range s.Table.Rows {
				if len(row) != len(s.Table.Headers) {
					report.add(SeverityWarning, file, fmt.Sprintf("sections[%d].table.rows[%d]", i, r), "row has %d cells for %d headers", len(row), len(s.Table.Headers))
				}
			}
		}
		clean.Sections = append(clean.Sections, s)
	}

	if p.Quiz != nil {
		questions := validQuestions(p.Quiz.Questions, report, file, "quiz.questions")
		switch {
		case len(p.Quiz.Questions) == 0:
			report.add(SeverityWarning, file, "quiz", "quiz has no questions")
			clean.Quiz = &quiz.Quiz{Title: p.Quiz.Title}
		case len(questions) == 0:
			report.add(SeverityError, file, "quiz", "no valid questions, quiz removed")
			clean.Quiz = nil
		default:
			clean.Quiz = &quiz.Quiz{Title: p.Quiz.Title, Questions: questions}
		}
	}
	return &clean
}

// validQuestions keeps the questions that pass validation, dropping
// malformed ones and later duplicates of an id.
func validQuestions(in []quiz.Question, report *Report, file, field string) []quiz.Question {
	seen := make(map[quiz.QuestionID]bool, len(in))
	out := make([]quiz.Question, 0, len(in))
	for i, q := range in {
		if err := q.Validate(); err != nil {
			report.add(SeverityError, file, fmt.Sprintf("%s[%d]", field, i), "%v", err)
			continue
		}
		if seen[q.ID] {
			report.add(SeverityError, file, fmt.Sprintf("%s[%d]", field, i), "%v: %s", quiz.ErrDuplicateQuestionID, q.ID)
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out
}

// validateExamRules resets out-of-range exam rules to their defaults and
// flags questions filed under categories the bank does not list.
func validateExamRules(b *page.QuestionBank, report *Report, file string) {
	if b.PassThreshold < 0 || b.PassThreshold > 100 {
		report.add(SeverityError, file, "pass_threshold", "must be between 0 and 100, got %d", b.PassThreshold)
		b.PassThreshold = 0
	}
	if b.TotalQuestions < 0 || b.TotalQuestions > quiz.MaxMockExamSize {
		report.add(SeverityError, file, "total_questions", "must be between 0 and %d, got %d", quiz.MaxMockExamSize, b.TotalQuestions)
		b.TotalQuestions = 0
	}
	if b.TimeLimit < 0 {
		report.add(SeverityError, file, "time_limit", "must not be negative, got %d", b.TimeLimit)
		b.TimeLimit = 0
	}

	listed := make(map[string]bool, len(b.Categories))
	for _, c := range b.Categories {
		listed[c] = true
	}
	for _, q := range b.Questions {
		if len(listed) > 0 && !listed[q.Category] {
			report.add(SeverityWarning, file, "category", "question %s: category %q is not listed by the bank", q.ID, q.Category)
		}
		if !q.Difficulty.IsValid() {
			report.add(SeverityWarning, file, "difficulty", "question %s: unknown difficulty %q", q.ID, q.Difficulty)
		}
	}
}
