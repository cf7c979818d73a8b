package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/domain"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/store"
)

type TriviaService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewTriviaService(repo *store.DB, log *logger.Logger) *TriviaService {
	return &TriviaService{Repo: repo, Logger: log.WithComponent("trivia")}
}

// Categories returns the categories keyed by id, the shape the client expects.
func (s *TriviaService) Categories(ctx context.Context) (map[string]string, error) {
	categories, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	out := make(map[string]string, len(categories))
	for _, c := range categories {
		out[strconv.Itoa(c.ID)] = c.Type
	}
	return out, nil
}

// NormalizePage maps a missing, non-numeric or non-positive page to 1.
func NormalizePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Questions returns page number page of the id-ordered questions matching
// the filter. A page past the end is empty, not an error.
func (s *TriviaService) Questions(ctx context.Context, f store.QuestionFilter, page int) (*domain.QuestionPage, error) {
	if page < 1 {
		page = 1
	}
	// Pages beyond maxPage are just as empty; clamping keeps the offset
	// from overflowing.
	if maxPage := math.MaxInt / constants.QuestionsPerPage; page > maxPage {
		page = maxPage
	}
	offset := (page - 1) * constants.QuestionsPerPage
	return s.Repo.ListQuestions(ctx, f, constants.QuestionsPerPage, offset)
}

// CategoryQuestions pages through the questions of an existing category.
func (s *TriviaService) CategoryQuestions(ctx context.Context, categoryID, page int) (*domain.QuestionPage, error) {
	if _, err := s.Repo.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.Questions(ctx, store.QuestionFilter{Category: categoryID}, page)
}

func (s *TriviaService) CreateQuestion(ctx context.Context, q *domain.Question) error {
	if err := s.Repo.CreateQuestion(ctx, q); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Question created", "question_id", q.ID, "category", q.Category)
	return nil
}

func (s *TriviaService) DeleteQuestion(ctx context.Context, id int) error {
	if err := s.Repo.DeleteQuestion(ctx, id); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Question deleted", "question_id", id)
	return nil
}

// NextQuizQuestion picks a random question of the category (0 for all)
// that is not in previous. It returns nil once the pool is exhausted.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, category int, previous []int) (*domain.Question, error) {
	q, err := s.Repo.RandomQuestion(ctx, category, previous)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return q, err
}
