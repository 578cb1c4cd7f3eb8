package quizgen

import "time"

// Config controls the Client, Synthesizer and TopicExtractor.
type Config struct {
	// Validators run in order on every parsed question; the first failure
	// rejects it as MalformedResponse.
	Validators []Validator

	// MaxTokens is the token budget for one response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// CallTimeout bounds a single backend call.
	CallTimeout time.Duration

	// SlotAttempts is the attempt budget per question slot.
	SlotAttempts int

	// TopicAttempts is the attempt budget for topic extraction.
	TopicAttempts int

	// RateLimitBackoff is the pause after a RateLimited failure.
	RateLimitBackoff time.Duration

	// RetryBackoff is the pause after a MalformedResponse or Transient
	// failure.
	RetryBackoff time.Duration

	// MinTextLength is the shortest article text used as question source.
	// Shorter text switches the whole run to title-only fallback mode.
	MinTextLength int

	// MaxQuestionText caps the article text sent per question prompt.
	MaxQuestionText int

	// MaxTopicContent caps the article text sent for topic extraction.
	MaxTopicContent int
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
			&AnswerValidator{},
		},
		MaxTokens:        2048,
		Temperature:      0.3,
		CallTimeout:      20 * time.Second,
		SlotAttempts:     3,
		TopicAttempts:    3,
		RateLimitBackoff: 5 * time.Second,
		MinTextLength:    500,
		MaxQuestionText:  2500,
		MaxTopicContent:  3000,
	}
}
