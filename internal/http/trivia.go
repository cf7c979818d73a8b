package httpapp

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/fullstack/internal/app"
	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/domain"
	apperrors "github.com/cesargomez89/fullstack/internal/errors"
	"github.com/cesargomez89/fullstack/internal/http/dto"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/store"
)

type TriviaHandler struct {
	base
	Service *app.TriviaService
}

func NewTriviaHandler(svc *app.TriviaService, log *logger.Logger) *TriviaHandler {
	return &TriviaHandler{base: base{Logger: log.WithComponent("trivia_http")}, Service: svc}
}

func (h *TriviaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{id}/questions", h.CategoryQuestions)
	r.Get("/questions", h.ListQuestions)
	r.Post("/questions", h.CreateQuestion)
	r.Post("/questions/search", h.SearchQuestions)
	r.Delete("/questions/{id}", h.DeleteQuestion)
	r.Post("/quizzes", h.NextQuizQuestion)
}

func (h *TriviaHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"categories": categories})
}

func (h *TriviaHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := app.NormalizePage(r.URL.Query().Get("page"))
	result, err := h.Service.Questions(r.Context(), store.QuestionFilter{}, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	categories, err := h.Service.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := questionList(result.Questions, result.Total, page)
	resp.Categories = categories
	writeJSON(w, http.StatusOK, resp)
}

func (h *TriviaHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req dto.QuestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if errs := dto.Validate(&req); len(errs) > 0 {
		h.invalid(w, r, errs)
		return
	}

	q := req.ToQuestion()
	if err := h.Service.CreateQuestion(r.Context(), q); err != nil {
		h.failWrite(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{
		"message": "new question added successfully",
		"created": q.ID,
	})
}

func (h *TriviaHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Service.DeleteQuestion(r.Context(), id); err != nil {
		h.failWrite(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{
		"message": "Successfully deleted question with id: " + strconv.Itoa(id),
		"deleted": id,
	})
}

func (h *TriviaHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req dto.QuestionSearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	page := app.NormalizePage(r.URL.Query().Get("page"))
	result, err := h.Service.Questions(r.Context(), store.QuestionFilter{Search: req.SearchTerm}, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questionList(result.Questions, result.Total, page))
}

func (h *TriviaHandler) CategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page := app.NormalizePage(r.URL.Query().Get("page"))
	result, err := h.Service.CategoryQuestions(r.Context(), id, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := questionList(result.Questions, result.Total, page)
	resp.CurrentCategory = &id
	writeJSON(w, http.StatusOK, resp)
}

func (h *TriviaHandler) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req dto.QuizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.QuizCategory.ID < 0 {
		h.writeError(w, r, apperrors.Validation(map[string]string{"quiz_category.id": "quiz_category.id must be 0 or a category id"}))
		return
	}

	q, err := h.Service.NextQuizQuestion(r.Context(), int(req.QuizCategory.ID), req.PreviousQuestions)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if q == nil {
		h.respond(w, http.StatusOK, nil)
		return
	}
	h.respond(w, http.StatusOK, envelope{"question": q})
}

func questionList(questions []domain.Question, total, page int) *dto.QuestionListResponse {
	if questions == nil {
		questions = []domain.Question{}
	}
	return &dto.QuestionListResponse{
		Success:        true,
		Questions:      questions,
		TotalQuestions: total,
		Pagination:     dto.NewPagination(page, constants.QuestionsPerPage, total),
	}
}
