package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/studycentre/internal/config"
	_ "github.com/saulo-duarte/studycentre/internal/docs"
	"github.com/saulo-duarte/studycentre/internal/middlewares"
	"github.com/saulo-duarte/studycentre/internal/page"
	"github.com/saulo-duarte/studycentre/internal/quiz"
)

type RouterConfig struct {
	PageHandler *page.Handler
	QuizHandler *quiz.Handler
	CorsOrigins []string
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.CorsOrigins))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", health)
	r.Get("/sitemap.xml", cfg.PageHandler.Sitemap)

	r.Mount("/pages", page.HTMLRoutes(cfg.PageHandler))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/quiz", quiz.Routes(cfg.QuizHandler))
		r.Mount("/", page.Routes(cfg.PageHandler))
	})
	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
