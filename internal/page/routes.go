package page

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves the JSON catalogue, mounted under /api.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/courses", h.ListCourses)
	r.Get("/courses/{course}", h.GetCourse)
	r.Get("/pages", h.ListPages)
	r.Get("/pages/{slug}", h.GetPage)
	r.Get("/banks", h.ListBanks)
	return r
}

// HTMLRoutes serves the rendered pages, mounted under /pages.
func HTMLRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/{slug}", h.ShowPage)
	r.Post("/{slug}/checks/{id}", h.AnswerCheck)
	r.Post("/{slug}/quiz", h.SubmitQuiz)
	return r
}
