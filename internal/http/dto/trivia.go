package dto

import (
	"strings"

	"github.com/cesargomez89/fullstack/internal/domain"
)

type QuestionRequest struct {
	Question   string  `json:"question" validate:"required,notblank"`
	Answer     string  `json:"answer" validate:"required,notblank"`
	Category   FlexInt `json:"category" validate:"required,gte=1"`
	Difficulty FlexInt `json:"difficulty" validate:"required,gte=1,lte=5"`
}

func (r *QuestionRequest) ToQuestion() *domain.Question {
	return &domain.Question{
		Question:   strings.TrimSpace(r.Question),
		Answer:     strings.TrimSpace(r.Answer),
		Category:   int(r.Category),
		Difficulty: int(r.Difficulty),
	}
}

type QuestionSearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type QuizCategory struct {
	ID   FlexInt `json:"id"`
	Type string  `json:"type,omitempty"`
}

type QuizRequest struct {
	PreviousQuestions []int        `json:"previous_questions"`
	QuizCategory      QuizCategory `json:"quiz_category"`
}

// QuestionListResponse is the page shape shared by the listing, search and
// per-category endpoints.
type QuestionListResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	Categories      map[string]string `json:"categories,omitempty"`
	CurrentCategory *int              `json:"current_category"`
	Pagination      *Pagination       `json:"pagination"`
}
