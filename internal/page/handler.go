package page

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/studycentre/internal/config"
	"github.com/saulo-duarte/studycentre/internal/quiz"
	"github.com/saulo-duarte/studycentre/internal/seo"
)

type Handler struct {
	service PageService
}

func NewHandler(s PageService) *Handler {
	return &Handler{service: s}
}

// ListCourses godoc
// @Summary  List courses
// @Tags     catalog
// @Produce  json
// @Success  200 {array} CourseSummary
// @Router   /api/courses [get]
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, courses)
}

// GetCourse godoc
// @Summary  Course with its pages in module and section order
// @Tags     catalog
// @Produce  json
// @Param    course path string true "Course slug"
// @Success  200 {object} CourseDetail
// @Failure  404 {object} map[string]string "course not found"
// @Router   /api/courses/{course} [get]
func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetCourse(r.Context(), chi.URLParam(r, "course"))
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			config.Error(w, http.StatusNotFound, "course not found")
			return
		}
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, detail)
}

func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.service.ListPages(r.Context())
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, pages)
}

// GetPage godoc
// @Summary  Page content without answers
// @Tags     catalog
// @Produce  json
// @Param    slug path string true "Page slug"
// @Success  200 {object} PageResponse
// @Failure  404 {object} map[string]string "page not found"
// @Router   /api/pages/{slug} [get]
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetPageResponse(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			config.Error(w, http.StatusNotFound, "page not found")
			return
		}
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.service.ListBanks(r.Context())
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, banks)
}

// ShowPage renders the page shell with every widget unanswered.
func (h *Handler) ShowPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, ViewState{})
}

// AnswerCheck re-renders the page with one inline check answered.
func (h *Handler) AnswerCheck(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	option, err := strconv.Atoi(r.PostForm.Get("option"))
	if err != nil {
		log.WithField("value", r.PostForm.Get("option")).Warn("Check submitted without a valid option")
		http.Error(w, "option required", http.StatusBadRequest)
		return
	}

	id := quiz.QuestionID(chi.URLParam(r, "id"))
	h.renderPage(w, r, ViewState{Checks: map[quiz.QuestionID]int{id: option}}, id)
}

// SubmitQuiz re-renders the page with the quiz graded. Form fields are
// named "q.<question id>".
func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	answers := make(map[quiz.QuestionID]int)
	for key, values := range r.PostForm {
		id, ok := strings.CutPrefix(key, "q.")
		if !ok || len(values) == 0 {
			continue
		}
		option, err := strconv.Atoi(values[0])
		if err != nil {
			http.Error(w, "invalid option for question "+id, http.StatusBadRequest)
			return
		}
		answers[quiz.QuestionID(id)] = option
	}

	h.renderPage(w, r, ViewState{Quiz: answers, QuizSubmitted: true})
}

// renderPage applies the page metadata once, then renders the shell.
// requireCheck names inline checks that must exist on the page.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, state ViewState, requireCheck ...quiz.QuestionID) {
	ctx := r.Context()
	log := config.WithContext(ctx)
	slug := chi.URLParam(r, "slug")

	p, err := h.service.GetPage(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			http.Error(w, "page not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	for _, id := range requireCheck {
		if _, ok := p.InlineCheck(id); !ok {
			http.Error(w, "question not found", http.StatusNotFound)
			return
		}
	}

	head := seo.NewHead()
	meta := p.Metadata(h.service.SiteURL())
	head.Apply(meta)
	for _, warning := range meta.Warnings() {
		log.WithField("slug", slug).Warnf("Page metadata: %s", warning)
	}

	view, err := BuildView(p, h.service.FindCourse(ctx, p.Course), head, state, log)
	if err != nil {
		if errors.Is(err, quiz.ErrOptionOutOfRange) || errors.Is(err, quiz.ErrUnknownQuestion) {
			http.Error(w, "invalid answer", http.StatusBadRequest)
			return
		}
		log.WithError(err).WithField("slug", slug).Error("Failed to build page view")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, view); err != nil {
		log.WithError(err).WithField("slug", slug).Error("Failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := h.service.Sitemap(r.Context())
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
