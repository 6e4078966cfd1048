package container

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/studycentre/internal/config"
	"github.com/saulo-duarte/studycentre/internal/content"
	"github.com/saulo-duarte/studycentre/internal/page"
	"github.com/saulo-duarte/studycentre/internal/quiz"
	"github.com/saulo-duarte/studycentre/internal/router"
	"github.com/saulo-duarte/studycentre/internal/runtoken"
)

type Container struct {
	Settings      config.Settings
	PageContainer *page.PageContainer
	QuizContainer *quiz.QuizContainer
}

// New wires the application from the environment. Content comes from the
// embedded library (or CONTENT_DIR) unless a catalog database is set.
func New() *Container {
	config.Init()
	settings := config.Load()
	runtoken.Init()

	repo, err := newRepository(context.Background(), settings)
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to load content")
	}

	pageContainer := page.NewPageContainer(repo, settings.SiteURL)
	quizContainer := quiz.NewQuizContainer(pageContainer.Service, settings.RunTokenTTL)

	return &Container{
		Settings:      settings,
		PageContainer: pageContainer,
		QuizContainer: quizContainer,
	}
}

func (c *Container) Handler() *chi.Mux {
	return router.New(router.RouterConfig{
		PageHandler: c.PageContainer.Handler,
		QuizHandler: c.QuizContainer.Handler,
		CorsOrigins: c.Settings.CorsOrigins,
	})
}

func newRepository(ctx context.Context, s config.Settings) (page.PageRepository, error) {
	log := config.WithContext(ctx)

	if s.DatabaseDriver != config.DriverNone {
		if err := config.Connect(ctx, s.DatabaseDriver, s.DatabaseDSN); err != nil {
			return nil, err
		}
		repo := page.NewGormRepository(config.DB)
		if err := repo.Migrate(); err != nil {
			return nil, err
		}
		log.WithField("driver", s.DatabaseDriver).Info("Serving content from catalog database")
		return repo, nil
	}

	lib, report, err := LoadLibrary(s)
	if err != nil {
		return nil, err
	}
	log.WithField("pages", len(lib.Pages)).WithField("issues", len(report.Issues)).Info("Content library loaded")
	return page.NewMemoryRepository(lib), nil
}

// LoadLibrary loads authored content per settings and logs every issue.
func LoadLibrary(s config.Settings) (*page.Library, *content.Report, error) {
	lib, report, err := content.Load(content.Source(s.ContentDir), content.Options{Strict: s.ContentStrict})
	for _, issue := range report.Issues {
		entry := config.Logger.WithField("file", issue.File).WithField("field", issue.Field)
		if issue.Severity == content.SeverityError {
			entry.Error(issue.Message)
		} else {
			entry.Warn(issue.Message)
		}
	}
	return lib, report, err
}
