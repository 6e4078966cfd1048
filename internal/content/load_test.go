package content_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/saulo-duarte/studycentre/internal/content"
	"github.com/saulo-duarte/studycentre/internal/page"
	"github.com/saulo-duarte/studycentre/internal/quiz"
)

const coursesYAML = `courses:
  - slug: coshh-awareness
    title: COSHH Awareness
`

const brokenPageYAML = `slug: broken
kind: section
course: coshh-awareness
title: Broken page
description: A page with authoring defects.
last_reviewed: "2026-01-01"
next:
  label: Nowhere
  to: ../missing-page
sections:
  - heading: Intro
    checks: [good, ghost]
inline_checks:
  - id: good
    question: Pick B
    options: [A, B]
    correct_index: 1
  - id: bad
    question: Pick nothing
    options: [A, B]
    correct_index: 5
quiz:
  questions:
    - id: 1
      question: Only one option
      options: [A]
      correct_index: 0
`

func findPage(lib *page.Library, slug string) *page.Page {
	for _, p := range lib.Pages {
		if p.Slug == slug {
			return p
		}
	}
	return nil
}

func hasIssue(r *content.Report, sev content.Severity, substr string) bool {
	for _, i := range r.Issues {
		if i.Severity == sev && strings.Contains(i.String(), substr) {
			return true
		}
	}
	return false
}

func TestLoadEmbedded(t *testing.T) {
	lib, report, err := content.Load(content.Embedded(), content.Options{Strict: true})
	if err != nil {
		t.Fatalf("embedded library should load strictly: %v", err)
	}
	if report.HasErrors() {
		t.Fatalf("unexpected errors: %v", report.Errors())
	}
	for _, w := range report.Warnings() {
		t.Logf("warning: %s", w)
	}

	if len(lib.Courses) != 2 || len(lib.Banks) != 1 {
		t.Errorf("expected 2 courses and 1 bank, got %d and %d", len(lib.Courses), len(lib.Banks))
	}

	p := findPage(lib, "coshh-awareness-module-1-section-1")
	if p == nil {
		t.Fatal("section page missing")
	}
	if p.Quiz == nil || p.Quiz.Len() != 5 {
		t.Fatalf("expected a 5 question quiz, got %+v", p.Quiz)
	}
	if _, ok := p.Quiz.Question("1"); !ok {
		t.Error("numeric quiz ids should decode as strings")
	}
	if len(p.Sections[0].Checks) != 1 || p.Sections[0].Checks[0] != "coshh-stands-for" {
		t.Errorf("unexpected section checks: %v", p.Sections[0].Checks)
	}
	if p.LastReviewed.String() != "2026-03-02" {
		t.Errorf("unexpected review date %s", p.LastReviewed)
	}

	seo := findPage(lib, "electrical-apprenticeship-faq")
	if seo == nil || seo.Kind != page.KindSEO {
		t.Fatal("seo page missing")
	}
	if len(seo.StructuredData) != 1 || seo.StructuredData[0].Type() != "FAQPage" {
		t.Errorf("unexpected structured data: %v", seo.StructuredData)
	}
}

func TestLoadStrict(t *testing.T) {
	fsys := fstest.MapFS{
		"courses.yaml":      {Data: []byte(coursesYAML)},
		"pages/broken.yaml": {Data: []byte(brokenPageYAML)},
	}

	_, report, err := content.Load(fsys, content.Options{Strict: true})
	var verr *content.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != len(report.Errors()) {
		t.Errorf("error should carry every error issue")
	}
	if !strings.Contains(err.Error(), "correct index") {
		t.Errorf("error should mention the bad correct index:\n%s", err)
	}
}

func TestLoadDegrades(t *testing.T) {
	fsys := fstest.MapFS{
		"courses.yaml":      {Data: []byte(coursesYAML)},
		"pages/broken.yaml": {Data: []byte(brokenPageYAML)},
		"pages/typo.yaml":   {Data: []byte("title: Typo\ntitel: oops\n")},
	}

	lib, report, err := content.Load(fsys, content.Options{})
	if err != nil {
		t.Fatalf("non-strict load should not fail: %v", err)
	}

	p := findPage(lib, "broken")
	if p == nil {
		t.Fatal("broken page should still be served")
	}

	t.Run("InvalidInlineCheckDropped", func(t *testing.T) {
		if len(p.InlineChecks) != 1 || p.InlineChecks[0].ID != "good" {
			t.Errorf("unexpected inline checks: %+v", p.InlineChecks)
		}
	})

	t.Run("UnknownCheckReferenceDropped", func(t *testing.T) {
		if got := p.Sections[0].Checks; len(got) != 1 || got[0] != quiz.QuestionID("good") {
			t.Errorf("unexpected section checks: %v", got)
		}
		if !hasIssue(report, content.SeverityError, "unknown inline check ghost") {
			t.Error("missing issue for ghost check")
		}
	})

	t.Run("QuizWithoutValidQuestionsRemoved", func(t *testing.T) {
		if p.Quiz != nil {
			t.Errorf("quiz should be removed, got %+v", p.Quiz)
		}
	})

	t.Run("BrokenLinkWarned", func(t *testing.T) {
		if !hasIssue(report, content.SeverityWarning, "unknown page missing-page") {
			t.Errorf("missing broken link warning: %v", report.Issues)
		}
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		if findPage(lib, "typo") != nil {
			t.Error("page with unknown field should be skipped")
		}
		if !hasIssue(report, content.SeverityError, "pages/typo.yaml") {
			t.Error("missing parse issue for typo.yaml")
		}
	})
}

func TestLoadRejectsDuplicates(t *testing.T) {
	first := "slug: same\ntitle: First\ndescription: d\nnext:\n  label: Gone\n  to: ../gone\n"
	second := "slug: same\ntitle: Second\ndescription: d\n"
	fsys := fstest.MapFS{
		"courses.yaml":   {Data: []byte(coursesYAML)},
		"pages/a.yaml":   {Data: []byte(first)},
		"pages/b.yaml":   {Data: []byte(second)},
		"banks/one.yaml": {Data: []byte("title: Empty bank\nquestions: []\n")},
	}

	lib, report, err := content.Load(fsys, content.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lib.Pages) != 1 {
		t.Errorf("expected duplicate page dropped, got %d pages", len(lib.Pages))
	}
	if len(lib.Banks) != 0 {
		t.Errorf("bank without questions should be dropped")
	}
	if !hasIssue(report, content.SeverityError, "pages/b.yaml: slug: duplicate page slug same, first defined in pages/a.yaml") {
		t.Errorf("missing duplicate issue: %v", report.Issues)
	}

	t.Run("FirstFileWins", func(t *testing.T) {
		p := findPage(lib, "same")
		if p == nil || p.Title != "First" {
			t.Fatalf("expected the page from a.yaml, got %+v", p)
		}
		if !hasIssue(report, content.SeverityWarning, "pages/a.yaml: next") {
			t.Errorf("issues for the kept page should name its file: %v", report.Issues)
		}
	})
}

func TestLoadRejectsDuplicateBanks(t *testing.T) {
	bank := func(title string) []byte {
		return []byte("slug: exam\ntitle: " + title + "\nquestions:\n  - id: 1\n    question: Q\n    options: [A, B]\n    correct_index: 0\n")
	}
	fsys := fstest.MapFS{
		"courses.yaml": {Data: []byte(coursesYAML)},
		"banks/a.yaml": {Data: bank("First")},
		"banks/b.yaml": {Data: bank("Second")},
	}

	lib, report, err := content.Load(fsys, content.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lib.Banks) != 1 || lib.Banks[0].Title != "First" {
		t.Fatalf("expected only the bank from a.yaml, got %+v", lib.Banks)
	}
	if !hasIssue(report, content.SeverityError, "banks/b.yaml: slug: duplicate bank slug exam, first defined in banks/a.yaml") {
		t.Errorf("missing duplicate issue: %v", report.Issues)
	}
}

const letterAnswerYAML = `slug: letter-answer
kind: section
course: coshh-awareness
title: Letter answer
description: The quiz uses a letter for its answer key.
last_reviewed: "2026-01-01"
sections:
  - heading: Intro
    paragraphs: [Still worth reading.]
quiz:
  questions:
    - id: 1
      question: Pick B
      options: [A, B]
      correct_index: B
`

const letterCheckYAML = `slug: letter-check
kind: section
course: coshh-awareness
title: Letter check
description: An inline check uses a letter for its answer key.
last_reviewed: "2026-01-01"
inline_checks:
  - id: letter
    question: Pick B
    options: [A, B]
    correct_index: B
quiz:
  questions:
    - id: 1
      question: Pick A
      options: [A, B]
      correct_index: 0
`

func TestLoadSalvagesPagesWithBadQuestions(t *testing.T) {
	fsys := fstest.MapFS{
		"courses.yaml":             {Data: []byte(coursesYAML)},
		"pages/letter-answer.yaml": {Data: []byte(letterAnswerYAML)},
		"pages/letter-check.yaml":  {Data: []byte(letterCheckYAML)},
	}

	lib, report, err := content.Load(fsys, content.Options{})
	if err != nil {
		t.Fatalf("non-strict load should not fail: %v", err)
	}

	t.Run("QuizDropped", func(t *testing.T) {
		p := findPage(lib, "letter-answer")
		if p == nil {
			t.Fatal("page should be kept without its quiz")
		}
		if p.Quiz != nil {
			t.Errorf("quiz should be dropped, got %+v", p.Quiz)
		}
		if len(p.Sections) != 1 || p.Title != "Letter answer" {
			t.Errorf("the rest of the page should survive: %+v", p)
		}
		if !hasIssue(report, content.SeverityError, "pages/letter-answer.yaml") {
			t.Error("missing decode error")
		}
		if !hasIssue(report, content.SeverityWarning, "pages/letter-answer.yaml: quiz: page kept without quiz") {
			t.Errorf("missing salvage warning: %v", report.Issues)
		}
	})

	t.Run("InlineChecksDropped", func(t *testing.T) {
		p := findPage(lib, "letter-check")
		if p == nil {
			t.Fatal("page should be kept without its inline checks")
		}
		if len(p.InlineChecks) != 0 {
			t.Errorf("inline checks should be dropped, got %+v", p.InlineChecks)
		}
		if p.Quiz == nil || p.Quiz.Len() != 1 {
			t.Errorf("valid quiz should survive, got %+v", p.Quiz)
		}
		if !hasIssue(report, content.SeverityWarning, "page kept without inline_checks") {
			t.Errorf("missing salvage warning: %v", report.Issues)
		}
	})

	t.Run("StrictStillFails", func(t *testing.T) {
		_, _, err := content.Load(fsys, content.Options{Strict: true})
		var verr *content.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

const examRulesYAML = `slug: exam
title: Exam rules
categories: [Legislation]
total_questions: 60
pass_threshold: 120
time_limit: -5
questions:
  - id: 1
    question: Listed
    options: [A, B]
    correct_index: 0
    category: Legislation
    difficulty: basic
  - id: 2
    question: Unlisted
    options: [A, B]
    correct_index: 1
    category: PPE
    difficulty: expert
`

func TestLoadBankExamRules(t *testing.T) {
	fsys := fstest.MapFS{
		"courses.yaml":    {Data: []byte(coursesYAML)},
		"banks/exam.yaml": {Data: []byte(examRulesYAML)},
	}

	lib, report, err := content.Load(fsys, content.Options{})
	if err != nil {
		t.Fatalf("non-strict load should not fail: %v", err)
	}
	if len(lib.Banks) != 1 {
		t.Fatalf("bank should be kept, got %d banks", len(lib.Banks))
	}
	exam := lib.Banks[0].Exam()
	if exam.PassThreshold != 0 || exam.TotalQuestions != 0 || exam.TimeLimit != 0 {
		t.Errorf("out-of-range rules should reset, got %+v", exam)
	}
	if len(exam.Questions) != 2 {
		t.Errorf("questions should be kept, got %d", len(exam.Questions))
	}

	for _, want := range []struct {
		sev    content.Severity
		substr string
	}{
		{content.SeverityError, "pass_threshold: must be between 0 and 100, got 120"},
		{content.SeverityError, "total_questions: must be between 0 and 50, got 60"},
		{content.SeverityError, "time_limit: must not be negative"},
		{content.SeverityWarning, `question 2: category "PPE" is not listed`},
		{content.SeverityWarning, `question 2: unknown difficulty "expert"`},
	} {
		if !hasIssue(report, want.sev, want.substr) {
			t.Errorf("missing %s %q in %v", want.sev, want.substr, report.Issues)
		}
	}
}
