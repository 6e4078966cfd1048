package page_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/studycentre/internal/page"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormRepo(t *testing.T) *page.GormRepository {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repo := page.NewGormRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo
}

func TestGormRepositorySeed(t *testing.T) {
	ctx := context.Background()
	repo := newGormRepo(t)
	lib := loadLibrary(t)

	res, err := repo.Seed(ctx, lib)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if res.Pages != len(lib.Pages) || res.Courses != len(lib.Courses) || res.Banks != len(lib.Banks) {
		t.Errorf("unexpected seed result: %+v", res)
	}

	t.Run("SeedIsRepeatable", func(t *testing.T) {
		if _, err := repo.Seed(ctx, lib); err != nil {
			t.Fatalf("second seed: %v", err)
		}
		pages, err := repo.ListPages(ctx, "")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(pages) != len(lib.Pages) {
			t.Errorf("expected %d pages after reseed, got %d", len(lib.Pages), len(pages))
		}
	})

	t.Run("PageRoundTrip", func(t *testing.T) {
		p, err := repo.GetPage(ctx, sectionSlug)
		if err != nil {
			t.Fatalf("get page: %v", err)
		}
		if p.Quiz == nil || p.Quiz.Len() != 5 {
			t.Fatalf("quiz lost in storage: %+v", p.Quiz)
		}
		q, _ := p.Quiz.Question("2")
		if q.CorrectIndex != 2 || len(q.Options) != 4 {
			t.Errorf("question changed in storage: %+v", q)
		}
		if p.LastReviewed.String() != "2026-03-02" {
			t.Errorf("review date changed: %s", p.LastReviewed)
		}
	})

	t.Run("StructuredDataRoundTrip", func(t *testing.T) {
		p, err := repo.GetPage(ctx, "electrical-apprenticeship-faq")
		if err != nil {
			t.Fatalf("get page: %v", err)
		}
		if len(p.StructuredData) != 1 || p.StructuredData[0].Type() != "FAQPage" {
			t.Errorf("structured data lost: %v", p.StructuredData)
		}
	})

	t.Run("CourseFilterAndOrder", func(t *testing.T) {
		pages, err := repo.ListPages(ctx, "coshh-awareness")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(pages) != 3 || pages[0].Slug != "coshh-awareness-module-1" {
			t.Errorf("unexpected pages: %d, first %s", len(pages), pages[0].Slug)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if _, err := repo.GetPage(ctx, "nope"); !errors.Is(err, page.ErrPageNotFound) {
			t.Errorf("expected ErrPageNotFound, got %v", err)
		}
		if _, err := repo.GetCourse(ctx, "nope"); !errors.Is(err, page.ErrCourseNotFound) {
			t.Errorf("expected ErrCourseNotFound, got %v", err)
		}
		if _, err := repo.GetBank(ctx, "nope"); !errors.Is(err, page.ErrBankNotFound) {
			t.Errorf("expected ErrBankNotFound, got %v", err)
		}
	})

	t.Run("ServiceOverGorm", func(t *testing.T) {
		svc := page.NewService(repo, siteURL)
		exam, err := svc.BankExam(ctx, "coshh-awareness")
		if err != nil {
			t.Fatalf("bank: %v", err)
		}
		if len(exam.Questions) != 30 {
			t.Errorf("expected 30 bank questions, got %d", len(exam.Questions))
		}
		if len(exam.Categories) != 5 || exam.PassThreshold != 80 || exam.TotalQuestions != 20 {
			t.Errorf("exam rules lost in the catalog round trip: %+v", exam)
		}
	})
}
