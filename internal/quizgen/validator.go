package quizgen

import (
	"fmt"
	"strings"
)

// Validator checks a parsed question for structural well-formedness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs.
	Name() string

	// Validate returns nil if q passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question was rejected. It classifies as
// MalformedResponse.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks the question text is present.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if strings.TrimSpace(q.Question) == "" {
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	}
	return nil
}

// OptionsValidator checks there are exactly four distinct, non-empty options.
// Options are compared without their label prefix and case-insensitively.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Question) *ValidationError {
	if len(q.Options) != len(Labels) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d options, got %d", len(Labels), len(q.Options)),
		}
	}
	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		body := strings.ToLower(optionBody(opt))
		if body == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %s is empty", Labels[i])}
		}
		if seen[body] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %s duplicates an earlier option", Labels[i])}
		}
		seen[body] = true
	}
	return nil
}

// AnswerValidator checks the answer is one of the option labels.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(q *Question) *ValidationError {
	for _, l := range Labels {
		if q.Answer == l {
			return nil
		}
	}
	return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("answer %q is not one of A-D", q.Answer)}
}

// NormalizeLabel trims and upper-cases an answer label and reduces "A)",
// "A." or "A: Paris" style answers to the bare letter.
func NormalizeLabel(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) > 1 && s[0] >= 'A' && s[0] <= 'D' && strings.ContainsRune(").: ", rune(s[1])) {
		return s[:1]
	}
	return s
}

// optionBody strips a leading "A) " style label from an option.
func optionBody(opt string) string {
	opt = strings.TrimSpace(opt)
	if len(opt) > 1 {
		c := opt[0] &^ 0x20 // upper-case ASCII
		if c >= 'A' && c <= 'D' && strings.ContainsRune(").:", rune(opt[1])) {
			return strings.TrimSpace(opt[2:])
		}
	}
	return opt
}
