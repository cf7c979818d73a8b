package store

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/domain"
)

// QuestionFilter narrows a question listing. Zero values match everything.
type QuestionFilter struct {
	Category int
	Search   string
}

func (f QuestionFilter) where() (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	if f.Category != constants.AllCategories {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}
	if f.Search != "" {
		clauses = append(clauses, `LOWER(question) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.Search))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// ListQuestions returns one id-ordered page of the questions matching the
// filter, plus the total number of matches.
func (db *DB) ListQuestions(ctx context.Context, f QuestionFilter, limit, offset int) (*domain.QuestionPage, error) {
	where, args := f.where()

	page := &domain.QuestionPage{Questions: []domain.Question{}}
	if err := db.get(ctx, &page.Total, `SELECT COUNT(*) FROM questions`+where, args...); err != nil {
		return nil, err
	}

	err := db.selectAll(ctx, &page.Questions,
		`SELECT id, question, answer, category, difficulty FROM questions`+where+` ORDER BY id LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (db *DB) GetQuestion(ctx context.Context, id int) (*domain.Question, error) {
	var q domain.Question
	err := db.get(ctx, &q, `SELECT id, question, answer, category, difficulty FROM questions WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (db *DB) CreateQuestion(ctx context.Context, q *domain.Question) error {
	id, err := db.insert(ctx, `INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)`,
		q.Question, q.Answer, q.Category, q.Difficulty)
	if err != nil {
		return err
	}
	q.ID = id
	return nil
}

func (db *DB) DeleteQuestion(ctx context.Context, id int) error {
	return db.exec(ctx, `DELETE FROM questions WHERE id = ?`, id)
}

// RandomQuestion picks a question not listed in exclude, optionally limited
// to a category. It returns domain.ErrNotFound once every candidate was used.
func (db *DB) RandomQuestion(ctx context.Context, category int, exclude []int) (*domain.Question, error) {
	query := `SELECT id, question, answer, category, difficulty FROM questions WHERE 1 = 1`
	var args []interface{}
	if category != constants.AllCategories {
		query += ` AND category = ?`
		args = append(args, category)
	}
	if len(exclude) > 0 {
		in, inArgs, err := sqlx.In(` AND id NOT IN (?)`, exclude)
		if err != nil {
			return nil, err
		}
		query += in
		args = append(args, inArgs...)
	}
	query += ` ORDER BY RANDOM() LIMIT 1`

	var q domain.Question
	if err := db.get(ctx, &q, query, args...); err != nil {
		return nil, err
	}
	return &q, nil
}
