package quiz

import (
	"math"
	"strconv"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quizgen"
)

// QuestionResult is the scoring of one question.
type QuestionResult struct {
	QuestionIndex int     `json:"question_index"`
	UserAnswer    *string `json:"user_answer"` // nil when unanswered
	CorrectAnswer string  `json:"correct_answer"`
	IsCorrect     bool    `json:"is_correct"`
	Explanation   string  `json:"explanation"`
}

// Score is the outcome of an attempt.
type Score struct {
	QuizID     int64            `json:"quiz_id"`
	AttemptID  int64            `json:"attempt_id,omitempty"`
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage float64          `json:"percentage"`
	Breakdown  []QuestionResult `json:"breakdown"`
}

// ScoreAnswers grades a sparse answer mapping keyed by question index
// ("0", "1", ...). A missing index counts as incorrect. Answers are compared
// after label normalization, so "b" and "B) Thames" both match B.
func ScoreAnswers(questions []quizgen.Question, answers map[string]string) Score {
	s := Score{Total: len(questions), Breakdown: make([]QuestionResult, 0, len(questions))}

	for i, q := range questions {
		r := QuestionResult{
			QuestionIndex: i,
			CorrectAnswer: q.Answer,
			Explanation:   q.Explanation,
		}
		if ans, ok := answers[strconv.Itoa(i)]; ok {
			r.UserAnswer = &ans
			r.IsCorrect = quizgen.NormalizeLabel(ans) == q.Answer
		}
		if r.IsCorrect {
			s.Score++
		}
		s.Breakdown = append(s.Breakdown, r)
	}

	s.Percentage = Percentage(s.Score, s.Total)
	return s
}

// Percentage is score/total*100 rounded to two decimals, or 0 for an empty
// quiz.
func Percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(score)/float64(total)*10000) / 100
}
