package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/pages/{slug}/runs", h.StartPageRun)
	r.Post("/pages/{slug}/grade", h.GradePage)
	r.Post("/pages/{slug}/checks/{questionID}", h.CheckInline)
	r.Post("/banks/{bank}/runs", h.StartMockExam)
	r.Post("/runs/select", h.Select)
	r.Post("/runs/score", h.Score)
	return r
}
