package page

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/studycentre/internal/config"
	"github.com/saulo-duarte/studycentre/internal/quiz"
	"github.com/saulo-duarte/studycentre/internal/seo"
	"github.com/sirupsen/logrus"
)

type PageService interface {
	quiz.Catalog

	ListCourses(ctx context.Context) ([]CourseSummary, error)
	GetCourse(ctx context.Context, slug string) (*CourseDetail, error)
	FindCourse(ctx context.Context, slug string) *Course
	ListPages(ctx context.Context) ([]PageSummary, error)
	GetPage(ctx context.Context, slug string) (*Page, error)
	GetPageResponse(ctx context.Context, slug string) (*PageResponse, error)
	ListBanks(ctx context.Context) ([]BankSummary, error)
	Sitemap(ctx context.Context) ([]byte, error)
	SiteURL() string
}

type pageService struct {
	repo    PageRepository
	siteURL string
}

func NewService(repo PageRepository, siteURL string) PageService {
	return &pageService{repo: repo, siteURL: siteURL}
}

func (s *pageService) SiteURL() string {
	return s.siteURL
}

func (s *pageService) ListCourses(ctx context.Context) ([]CourseSummary, error) {
	log := config.WithContext(ctx)

	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list courses")
		return nil, err
	}
	pages, err := s.repo.ListPages(ctx, "")
	if err != nil {
		log.WithError(err).Error("Failed to list pages")
		return nil, err
	}

	counts := make(map[string]int)
	for _, p := range pages {
		counts[p.Course]++
	}

	out := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		out = append(out, CourseSummary{
			Slug:        c.Slug,
			Title:       c.Title,
			Description: c.Description,
			Level:       c.Level,
			Pages:       counts[c.Slug],
		})
	}
	return out, nil
}

func (s *pageService) GetCourse(ctx context.Context, slug string) (*CourseDetail, error) {
	log := config.WithContext(ctx)

	course, err := s.repo.GetCourse(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrCourseNotFound) {
			log.WithError(err).WithField("course", slug).Error("Failed to get course")
		}
		return nil, err
	}

	pages, err := s.repo.ListPages(ctx, slug)
	if err != nil {
		log.WithError(err).WithField("course", slug).Error("Failed to list course pages")
		return nil, err
	}

	detail := &CourseDetail{Course: *course, Pages: make([]PageSummary, 0, len(pages))}
	for _, p := range pages {
		detail.Pages = append(detail.Pages, toSummary(p))
	}
	return detail, nil
}

func (s *pageService) ListPages(ctx context.Context) ([]PageSummary, error) {
	pages, err := s.repo.ListPages(ctx, "")
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list pages")
		return nil, err
	}
	out := make([]PageSummary, 0, len(pages))
	for _, p := range pages {
		out = append(out, toSummary(p))
	}
	return out, nil
}

// FindCourse is a best-effort lookup used for breadcrumbs.
func (s *pageService) FindCourse(ctx context.Context, slug string) *Course {
	if slug == "" {
		return nil
	}
	c, err := s.repo.GetCourse(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrCourseNotFound) {
			config.WithContext(ctx).WithError(err).WithField("course", slug).Warn("Failed to look up course")
		}
		return nil
	}
	return c
}

func (s *pageService) GetPage(ctx context.Context, slug string) (*Page, error) {
	p, err := s.repo.GetPage(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrPageNotFound) {
			config.WithContext(ctx).WithError(err).WithField("slug", slug).Error("Failed to get page")
		}
		return nil, err
	}
	return p, nil
}

func (s *pageService) GetPageResponse(ctx context.Context, slug string) (*PageResponse, error) {
	p, err := s.GetPage(ctx, slug)
	if err != nil {
		return nil, err
	}
	logMetadataWarnings(config.WithContext(ctx), p)
	return toResponse(p, s.siteURL), nil
}

func (s *pageService) ListBanks(ctx context.Context) ([]BankSummary, error) {
	banks, err := s.repo.ListBanks(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list question banks")
		return nil, err
	}
	out := make([]BankSummary, 0, len(banks))
	for _, b := range banks {
		out = append(out, BankSummary{
			Slug:        b.Slug,
			Title:       b.Title,
			Description: b.Description,
			Course:      b.Course,
			Questions:   len(b.Questions),

			Categories:     quiz.CountByCategory(b.Questions),
			TotalQuestions: b.Exam().Size(0),
			PassThreshold:  b.PassThreshold,
			TimeLimit:      b.TimeLimit,
		})
	}
	return out, nil
}

func (s *pageService) Sitemap(ctx context.Context) ([]byte, error) {
	pages, err := s.repo.ListPages(ctx, "")
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list pages for sitemap")
		return nil, err
	}
	entries := make([]seo.SitemapEntry, 0, len(pages))
	for _, p := range pages {
		entries = append(entries, seo.SitemapEntry{Path: "/pages/" + p.Slug, LastMod: p.LastReviewed.Time})
	}
	return seo.BuildSitemap(s.siteURL, entries)
}

func (s *pageService) PageQuiz(ctx context.Context, slug string) (quiz.Quiz, error) {
	p, err := s.GetPage(ctx, slug)
	if err != nil {
		return quiz.Quiz{}, asQuizNotFound(err)
	}
	if p.Quiz == nil {
		return quiz.Quiz{}, fmt.Errorf("page %s: %w", slug, quiz.ErrQuizNotFound)
	}
	return *p.Quiz, nil
}

func (s *pageService) PageCheck(ctx context.Context, slug string, id quiz.QuestionID) (quiz.Question, error) {
	p, err := s.GetPage(ctx, slug)
	if err != nil {
		return quiz.Question{}, asQuizNotFound(err)
	}
	q, ok := p.InlineCheck(id)
	if !ok {
		return quiz.Question{}, fmt.Errorf("page %s: %w: %s", slug, quiz.ErrUnknownQuestion, id)
	}
	return q, nil
}

func (s *pageService) BankExam(ctx context.Context, slug string) (quiz.Exam, error) {
	b, err := s.repo.GetBank(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrBankNotFound) {
			config.WithContext(ctx).WithError(err).WithField("bank", slug).Error("Failed to get question bank")
		}
		return quiz.Exam{}, asQuizNotFound(err)
	}
	return b.Exam(), nil
}

// asQuizNotFound lets the quiz package map catalog misses without knowing
// about pages or banks.
func asQuizNotFound(err error) error {
	if errors.Is(err, ErrPageNotFound) || errors.Is(err, ErrBankNotFound) {
		return fmt.Errorf("%w: %w", quiz.ErrQuizNotFound, err)
	}
	return err
}

func logMetadataWarnings(log logrus.FieldLogger, p *Page) {
	for _, w := range p.Metadata("").Warnings() {
		log.WithField("slug", p.Slug).Warnf("Page metadata: %s", w)
	}
}
