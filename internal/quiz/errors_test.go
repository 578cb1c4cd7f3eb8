package quiz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quizgen"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/wiki"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"invalid input", fmt.Errorf("%w: %v", ErrInvalidInput, wiki.ErrInvalidURL), CategoryInvalidInput},
		{"not found", fmt.Errorf("quiz 7: %w", ErrNotFound), CategoryNotFound},
		{"upstream", &UpstreamError{URL: "u", Err: wiki.ErrNoContent}, CategoryUpstreamUnavailable},
		{"rate limited", &quizgen.SynthesisError{Reason: quizgen.ReasonRateLimitExceeded}, CategoryRateLimited},
		{"auth", &quizgen.SynthesisError{Reason: quizgen.ReasonAuthFailed}, CategoryAuthFailed},
		{"model", &quizgen.SynthesisError{Reason: quizgen.ReasonModelUnavailable}, CategoryModelUnavailable},
		{"incomplete", &quizgen.SynthesisError{Reason: quizgen.ReasonIncompleteQuiz, Count: 4}, CategoryIncompleteQuiz},
		{"other", errors.New("database is locked"), CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := Categorize(tt.err)
			if got != tt.want {
				t.Errorf("Categorize() = %q, want %q", got, tt.want)
			}
			if msg == "" {
				t.Error("empty user message")
			}
			if tt.want != CategoryInvalidInput && strings.Contains(msg, tt.err.Error()) {
				t.Errorf("message leaks internal error text: %q", msg)
			}
		})
	}
}

func TestCategorize_InvalidInputKeepsMessage(t *testing.T) {
	err := fmt.Errorf("%w: %v", ErrInvalidInput, wiki.ErrInvalidURL)
	_, msg := Categorize(err)
	if !strings.Contains(msg, "en.wikipedia.org") {
		t.Errorf("message = %q, want the validation detail", msg)
	}
}
