package server

import "time"

type GenerateRequest struct {
	URL string `json:"url" binding:"required"`
}

type AttemptRequest struct {
	Answers map[string]string `json:"answers"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

type HistoryItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type AttemptItem struct {
	ID         int64             `json:"id"`
	QuizID     int64             `json:"quiz_id"`
	Score      int               `json:"score"`
	Total      int               `json:"total"`
	Percentage float64           `json:"percentage"`
	Answers    map[string]string `json:"answers"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ErrorResponse carries a stable category and a message safe to show users.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
