package quiz

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/studycentre/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

// StartPageRun godoc
// @Summary  Start a run of a page's end-of-section quiz
// @Tags     quiz
// @Produce  json
// @Param    slug path string true "Page slug"
// @Success  201 {object} StartRunResponse
// @Failure  404 {object} map[string]string "quiz not found"
// @Router   /api/quiz/pages/{slug}/runs [post]
func (h *Handler) StartPageRun(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.StartPageRun(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, resp)
}

// StartMockExam godoc
// @Summary  Start a mock exam drawn from a question bank
// @Tags     quiz
// @Accept   json
// @Produce  json
// @Param    bank path string true "Bank slug"
// @Param    body body MockExamRequest false "Question count and optional seed"
// @Success  201 {object} StartRunResponse
// @Router   /api/quiz/banks/{bank}/runs [post]
func (h *Handler) StartMockExam(w http.ResponseWriter, r *http.Request) {
	var req MockExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count < 0 || req.Count > MaxMockExamSize {
		config.Error(w, http.StatusBadRequest, "count must be between 1 and 50")
		return
	}

	resp, err := h.service.StartMockExam(r.Context(), chi.URLParam(r, "bank"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, resp)
}

// Select godoc
// @Summary  Answer one question of a run
// @Tags     quiz
// @Accept   json
// @Produce  json
// @Param    body body SelectRequest true "Run token and selection"
// @Success  200 {object} SelectResponse
// @Failure  400 {object} map[string]string "option index out of range"
// @Failure  401 {object} map[string]string "invalid run token"
// @Router   /api/quiz/runs/select [post]
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Token == "" {
		config.Error(w, http.StatusBadRequest, "token required")
		return
	}
	if req.OptionIndex == nil {
		config.Error(w, http.StatusBadRequest, "option_index required")
		return
	}

	resp, err := h.service.Select(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		config.Error(w, http.StatusBadRequest, "token required")
		return
	}

	resp, err := h.service.Score(r.Context(), req.Token)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

// GradePage godoc
// @Summary  Grade a full answer sheet for a page's quiz
// @Tags     quiz
// @Accept   json
// @Produce  json
// @Param    slug path string true "Page slug"
// @Param    body body GradeRequest true "Answers keyed by question id"
// @Success  200 {object} GradeResponse
// @Router   /api/quiz/pages/{slug}/grade [post]
func (h *Handler) GradePage(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.GradePage(r.Context(), chi.URLParam(r, "slug"), req.Answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) CheckInline(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OptionIndex == nil {
		config.Error(w, http.StatusBadRequest, "option_index required")
		return
	}

	slug := chi.URLParam(r, "slug")
	id := QuestionID(chi.URLParam(r, "questionID"))
	res, err := h.service.CheckInline(r.Context(), slug, id, *req.OptionIndex)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidRunToken):
		config.Error(w, http.StatusUnauthorized, "invalid run token")
	case errors.Is(err, ErrQuizNotFound):
		config.Error(w, http.StatusNotFound, "quiz not found")
	case errors.Is(err, ErrUnknownQuestion):
		config.Error(w, http.StatusNotFound, "question not found")
	case errors.Is(err, ErrOptionOutOfRange):
		config.Error(w, http.StatusBadRequest, "option index out of range")
	default:
		config.WithContext(r.Context()).WithError(err).Error("Quiz request failed")
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
