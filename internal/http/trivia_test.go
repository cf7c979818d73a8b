package httpapp

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesargomez89/fullstack/internal/app"
	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/domain"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/store"
)

func newTriviaRouter(t *testing.T) (http.Handler, *store.DB) {
	t.Helper()
	db := newTestStore(t, store.TriviaSchema)
	require.NoError(t, db.SeedCategories(context.Background()))
	h := NewTriviaHandler(app.NewTriviaService(db, logger.Discard()), logger.Discard())
	return newTestRouter(t, constants.AppTrivia, db, h), db
}

func seedQuestions(t *testing.T, db *store.DB, n, category int) []int {
	t.Helper()
	ids := make([]int, 0, n)
	for i := 0; i < n; i++ {
		q := &domain.Question{
			Question:   fmt.Sprintf("Question number %d?", i+1),
			Answer:     "answer",
			Category:   category,
			Difficulty: 1 + i%5,
		}
		require.NoError(t, db.CreateQuestion(context.Background(), q))
		ids = append(ids, q.ID)
	}
	return ids
}

func TestTrivia_Categories(t *testing.T) {
	h, _ := newTriviaRouter(t)

	rec := do(t, h, request{method: http.MethodGet, path: "/categories"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := readJSON(t, rec)
	assert.Equal(t, true, body["success"])
	categories := body["categories"].(map[string]interface{})
	assert.Len(t, categories, 6)
	assert.Equal(t, "Science", categories["1"])
}

func TestTrivia_Pagination(t *testing.T) {
	h, db := newTriviaRouter(t)
	seedQuestions(t, db, 12, 1)

	tests := []struct {
		name  string
		query string
		count int
		first string
	}{
		{"default page", "", 10, "Question number 1?"},
		{"second page", "?page=2", 2, "Question number 11?"},
		{"past the end", "?page=3", 0, ""},
		{"huge page", "?page=9223372036854775807", 0, ""},
		{"non numeric", "?page=abc", 10, "Question number 1?"},
		{"negative", "?page=-2", 10, "Question number 1?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, request{method: http.MethodGet, path: "/questions" + tt.query})

			require.Equal(t, http.StatusOK, rec.Code)
			body := readJSON(t, rec)
			questions := body["questions"].([]interface{})
			assert.Len(t, questions, tt.count)
			assert.Equal(t, float64(12), body["total_questions"])
			assert.Contains(t, body, "current_category")
			assert.Nil(t, body["current_category"])
			if tt.first != "" {
				assert.Equal(t, tt.first, questions[0].(map[string]interface{})["question"])
			}
		})
	}
}

func TestTrivia_CreateQuestion(t *testing.T) {
	h, _ := newTriviaRouter(t)

	rec := do(t, h, request{method: http.MethodPost, path: "/questions", body: map[string]interface{}{
		"question": "What is the heaviest organ in the human body?", "answer": "The Liver", "category": 1, "difficulty": 4,
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, request{method: http.MethodGet, path: "/questions"})
	assert.Equal(t, float64(1), readJSON(t, rec)["total_questions"])
}

func TestTrivia_CreateQuestionValidation(t *testing.T) {
	h, _ := newTriviaRouter(t)

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"missing answer", map[string]interface{}{"question": "Q?", "category": 1, "difficulty": 1}, "answer"},
		{"blank question", map[string]interface{}{"question": "   ", "answer": "A", "category": 1, "difficulty": 1}, "question"},
		{"zero category", map[string]interface{}{"question": "Q?", "answer": "A", "category": 0, "difficulty": 1}, "category"},
		{"difficulty too high", map[string]interface{}{"question": "Q?", "answer": "A", "category": 1, "difficulty": 9}, "difficulty"},
		{"malformed", "{not json", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, request{method: http.MethodPost, path: "/questions", body: tt.body})

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := readJSON(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, float64(400), body["error"])
			assert.Equal(t, "Bad Request", body["message"])
			if tt.field != "" {
				assert.Contains(t, body["fields"], tt.field)
			}
		})
	}
}

func TestTrivia_CreateQuestionStringCategory(t *testing.T) {
	h, _ := newTriviaRouter(t)

	rec := do(t, h, request{method: http.MethodPost, path: "/questions", body: map[string]interface{}{
		"question": "Q?", "answer": "A", "category": "3", "difficulty": "2",
	}})

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestTrivia_DeleteQuestion(t *testing.T) {
	h, db := newTriviaRouter(t)
	ids := seedQuestions(t, db, 1, 2)

	rec := do(t, h, request{method: http.MethodDelete, path: fmt.Sprintf("/questions/%d", ids[0])})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(ids[0]), readJSON(t, rec)["deleted"])

	rec = do(t, h, request{method: http.MethodDelete, path: fmt.Sprintf("/questions/%d", ids[0])})
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := readJSON(t, rec)
	assert.Equal(t, "Resource Not Found", body["message"])

	rec = do(t, h, request{method: http.MethodDelete, path: "/questions/abc"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrivia_Search(t *testing.T) {
	h, db := newTriviaRouter(t)
	seedQuestions(t, db, 3, 1)
	require.NoError(t, db.CreateQuestion(context.Background(), &domain.Question{
		Question: "What is 100% of nothing?", Answer: "0", Category: 1, Difficulty: 1,
	}))

	tests := []struct {
		term  string
		count int
	}{
		{"NUMBER", 3},
		{"number 2", 1},
		{"100%", 1},
		{"%", 1},
		{"title", 0},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			rec := do(t, h, request{method: http.MethodPost, path: "/questions/search", body: map[string]string{"searchTerm": tt.term}})

			require.Equal(t, http.StatusOK, rec.Code)
			body := readJSON(t, rec)
			assert.Equal(t, float64(tt.count), body["total_questions"])
			assert.Len(t, body["questions"], tt.count)
		})
	}
}

func TestTrivia_CategoryQuestions(t *testing.T) {
	h, db := newTriviaRouter(t)
	seedQuestions(t, db, 2, 3)
	seedQuestions(t, db, 1, 4)

	rec := do(t, h, request{method: http.MethodGet, path: "/categories/3/questions"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := readJSON(t, rec)
	assert.Equal(t, float64(2), body["total_questions"])
	assert.Equal(t, float64(3), body["current_category"])

	rec = do(t, h, request{method: http.MethodGet, path: "/categories/99/questions"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrivia_Quiz(t *testing.T) {
	h, db := newTriviaRouter(t)
	ids := seedQuestions(t, db, 3, 5)
	seedQuestions(t, db, 2, 6)

	previous := []int{}
	for i := 0; i < len(ids); i++ {
		rec := do(t, h, request{method: http.MethodPost, path: "/quizzes", body: map[string]interface{}{
			"previous_questions": previous,
			"quiz_category":      map[string]interface{}{"id": 5, "type": "Entertainment"},
		}})
		require.Equal(t, http.StatusOK, rec.Code)

		q := readJSON(t, rec)["question"].(map[string]interface{})
		id := int(q["id"].(float64))
		assert.NotContains(t, previous, id)
		assert.Equal(t, float64(5), q["category"])
		previous = append(previous, id)
	}

	rec := do(t, h, request{method: http.MethodPost, path: "/quizzes", body: map[string]interface{}{
		"previous_questions": previous,
		"quiz_category":      map[string]interface{}{"id": 5},
	}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := readJSON(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "question")
}

func TestTrivia_QuizAllCategories(t *testing.T) {
	h, db := newTriviaRouter(t)
	seedQuestions(t, db, 1, 2)

	rec := do(t, h, request{method: http.MethodPost, path: "/quizzes", body: map[string]interface{}{
		"previous_questions": []int{},
		"quiz_category":      map[string]interface{}{"id": "0", "type": "click"},
	}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, readJSON(t, rec), "question")
}

func TestTrivia_UnknownRouteAndMethod(t *testing.T) {
	h, _ := newTriviaRouter(t)

	rec := do(t, h, request{method: http.MethodGet, path: "/nope"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := readJSON(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(404), body["error"])

	rec = do(t, h, request{method: http.MethodPut, path: "/categories"})
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", readJSON(t, rec)["message"])
}
