package domain

// Category groups trivia questions.
type Category struct {
	ID   int    `json:"id" db:"id"`
	Type string `json:"type" db:"type"`
}

// Question is a single trivia question.
type Question struct {
	ID         int    `json:"id" db:"id"`
	Question   string `json:"question" db:"question"`
	Answer     string `json:"answer" db:"answer"`
	Category   int    `json:"category" db:"category"`
	Difficulty int    `json:"difficulty" db:"difficulty"`
}

// QuestionPage is one page of an id-ordered question listing.
type QuestionPage struct {
	Questions []Question
	Total     int
}
