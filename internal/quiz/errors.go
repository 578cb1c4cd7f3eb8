package quiz

import (
	"errors"
	"fmt"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quizgen"
)

var (
	// ErrInvalidInput is returned for input rejected before any cache or
	// network activity.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a quiz id does not exist.
	ErrNotFound = errors.New("not found")
)

// UpstreamError means the article could not be fetched or read.
type UpstreamError struct {
	URL string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream unavailable for %s: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Category is the stable, user-facing class of a request failure.
type Category string

const (
	CategoryInvalidInput        Category = "invalid_input"
	CategoryUpstreamUnavailable Category = "upstream_unavailable"
	CategoryRateLimited         Category = "rate_limited"
	CategoryAuthFailed          Category = "auth_failed"
	CategoryModelUnavailable    Category = "model_unavailable"
	CategoryIncompleteQuiz      Category = "incomplete_quiz"
	CategoryNotFound            Category = "not_found"
	CategoryInternal            Category = "internal"
)

var categoryMessages = map[Category]string{
	CategoryUpstreamUnavailable: "Failed to fetch the Wikipedia article. Please check the URL and try again.",
	CategoryRateLimited:         "The AI service is rate limited right now. Please wait a minute and try again.",
	CategoryAuthFailed:          "The AI service rejected the configured API key.",
	CategoryModelUnavailable:    "The configured AI model is not available.",
	CategoryIncompleteQuiz:      "Could not generate a complete quiz for this article. Please try again.",
	CategoryNotFound:            "Quiz not found.",
	CategoryInternal:            "Something went wrong. Please try again.",
}

// Categorize maps err to its Category and a message safe to show users.
// Only invalid-input errors carry their own text, since it is written for
// the user.
func Categorize(err error) (Category, string) {
	var (
		upstreamErr *UpstreamError
		synthErr    *quizgen.SynthesisError
	)
	switch {
	case errors.Is(err, ErrInvalidInput):
		return CategoryInvalidInput, err.Error()
	case errors.Is(err, ErrNotFound):
		return CategoryNotFound, categoryMessages[CategoryNotFound]
	case errors.As(err, &upstreamErr):
		return CategoryUpstreamUnavailable, categoryMessages[CategoryUpstreamUnavailable]
	case errors.As(err, &synthErr):
		cat := synthesisCategory(synthErr.Reason)
		return cat, categoryMessages[cat]
	}
	return CategoryInternal, categoryMessages[CategoryInternal]
}

func synthesisCategory(r quizgen.SynthesisReason) Category {
	switch r {
	case quizgen.ReasonRateLimitExceeded:
		return CategoryRateLimited
	case quizgen.ReasonAuthFailed:
		return CategoryAuthFailed
	case quizgen.ReasonModelUnavailable:
		return CategoryModelUnavailable
	case quizgen.ReasonIncompleteQuiz:
		return CategoryIncompleteQuiz
	}
	return CategoryInternal
}
