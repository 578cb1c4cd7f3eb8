package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/llm"
)

// FailureKind classifies why a single generation call failed.
type FailureKind string

const (
	RateLimited       FailureKind = "rate_limited"
	AuthFailed        FailureKind = "auth_failed"
	ModelUnavailable  FailureKind = "model_unavailable"
	MalformedResponse FailureKind = "malformed_response"
	Transient         FailureKind = "transient"
)

// GenerationError is returned by Client.Complete for every failure.
type GenerationError struct {
	Kind FailureKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func malformed(format string, args ...any) *GenerationError {
	return &GenerationError{Kind: MalformedResponse, Err: fmt.Errorf(format, args...)}
}

// Classify maps any error to a FailureKind. Typed errors are consulted
// first, then SDK status codes, and the error text only as a last resort.
func Classify(err error) FailureKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}

	var (
		rateErr     *llm.ErrRateLimit
		authErr     *llm.ErrAuth
		notFoundErr *llm.ErrModelNotFound
		invalidErr  *llm.ErrInvalidResponse
		maxTokErr   *llm.ErrMaxTokensExceeded
		valErr      *ValidationError
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &rateErr):
		return RateLimited
	case errors.As(err, &authErr):
		return AuthFailed
	case errors.As(err, &notFoundErr):
		return ModelUnavailable
	case errors.As(err, &invalidErr), errors.As(err, &maxTokErr),
		errors.As(err, &valErr), errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return MalformedResponse
	}

	if code, ok := llm.StatusCode(err); ok {
		switch code {
		case http.StatusTooManyRequests:
			return RateLimited
		case http.StatusUnauthorized, http.StatusForbidden:
			return AuthFailed
		case http.StatusNotFound:
			return ModelUnavailable
		}
		return Transient
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Transient
	}

	return classifyMessage(err.Error())
}

func classifyMessage(msg string) FailureKind {
	lower := strings.ToLower(msg)
	switch {
	case containsAny(lower, "429", "resource_exhausted", "rate limit", "quota"):
		return RateLimited
	case containsAny(lower, "401", "403", "unauthenticated", "permission_denied", "api key"):
		return AuthFailed
	case containsAny(lower, "not_found", "404", "model not found"):
		return ModelUnavailable
	}
	return Transient
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// fatal reports whether a failure of this kind can never succeed on retry
// within the same request.
func fatal(kind FailureKind) bool {
	return kind == AuthFailed || kind == ModelUnavailable
}

// SynthesisReason is why a quiz could not be synthesized.
type SynthesisReason string

const (
	ReasonRateLimitExceeded SynthesisReason = "rate_limit_exceeded"
	ReasonAuthFailed        SynthesisReason = "auth_failed"
	ReasonModelUnavailable  SynthesisReason = "model_unavailable"
	ReasonIncompleteQuiz    SynthesisReason = "incomplete_quiz"
)

// SynthesisError aborts a synthesis run. No partial quiz accompanies it.
type SynthesisError struct {
	Reason SynthesisReason

	// Count is the number of slots filled, set for ReasonIncompleteQuiz.
	Count int

	// Err is the generation failure that aborted the run, if any.
	Err error
}

func (e *SynthesisError) Error() string {
	if e.Reason == ReasonIncompleteQuiz {
		return fmt.Sprintf("incomplete quiz: generated %d of %d questions", e.Count, QuizSize)
	}
	if e.Err != nil {
		return fmt.Sprintf("quiz synthesis aborted (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("quiz synthesis aborted (%s)", e.Reason)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
