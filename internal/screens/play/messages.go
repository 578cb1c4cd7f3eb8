package play

import (
	"time"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quiz"
)

// quizReadyMsg carries the result of generating or loading a quiz.
type quizReadyMsg struct {
	Result *quiz.Result
	Err    error
}

// scoredMsg carries the stored attempt score.
type scoredMsg struct {
	Score *quiz.Score
	Err   error
}

// spinnerTickMsg animates the loading spinner.
type spinnerTickMsg time.Time
