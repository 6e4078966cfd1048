package page_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saulo-duarte/studycentre/internal/page"
	"github.com/saulo-duarte/studycentre/internal/quiz"
)

func TestServiceCatalog(t *testing.T) {
	ctx := context.Background()
	svc := page.NewService(page.NewMemoryRepository(loadLibrary(t)), siteURL)

	t.Run("PageQuiz", func(t *testing.T) {
		q, err := svc.PageQuiz(ctx, sectionSlug)
		if err != nil || q.Len() != 5 {
			t.Fatalf("unexpected quiz %+v, %v", q, err)
		}
	})

	t.Run("PageWithoutQuiz", func(t *testing.T) {
		_, err := svc.PageQuiz(ctx, "electrical-apprenticeship-faq")
		if !errors.Is(err, quiz.ErrQuizNotFound) {
			t.Errorf("expected ErrQuizNotFound, got %v", err)
		}
	})

	t.Run("MissingPageIsQuizNotFound", func(t *testing.T) {
		_, err := svc.PageQuiz(ctx, "nope")
		if !errors.Is(err, quiz.ErrQuizNotFound) || !errors.Is(err, page.ErrPageNotFound) {
			t.Errorf("expected both sentinels, got %v", err)
		}
	})

	t.Run("PageCheck", func(t *testing.T) {
		q, err := svc.PageCheck(ctx, sectionSlug, "coshh-not-covered")
		if err != nil || q.CorrectIndex != 2 {
			t.Fatalf("unexpected check %+v, %v", q, err)
		}
		if _, err := svc.PageCheck(ctx, sectionSlug, "ghost"); !errors.Is(err, quiz.ErrUnknownQuestion) {
			t.Errorf("expected ErrUnknownQuestion, got %v", err)
		}
	})

	t.Run("ListCoursesCountsPages", func(t *testing.T) {
		courses, err := svc.ListCourses(ctx)
		if err != nil {
			t.Fatalf("list courses: %v", err)
		}
		counts := map[string]int{}
		for _, c := range courses {
			counts[c.Slug] = c.Pages
		}
		if counts["coshh-awareness"] != 3 || counts["electrical-apprenticeship"] != 1 {
			t.Errorf("unexpected counts: %v", counts)
		}
	})
}

func TestLinkTarget(t *testing.T) {
	cases := map[string]string{
		"../coshh-awareness-module-1-section-2": "coshh-awareness-module-1-section-2",
		"../../section4":                        "section4",
		"./5-1":                                 "5-1",
		"/pages/intro":                          "intro",
		"../":                                   "",
	}
	for in, want := range cases {
		if got := (page.Link{To: in}).Target(); got != want {
			t.Errorf("Target(%q) = %q, want %q", in, got, want)
		}
	}
}
