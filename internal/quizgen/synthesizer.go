package quizgen

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/llm"
)

// Synthesizer fills the curriculum slot by slot through the Client.
type Synthesizer struct {
	client *Client
	config Config
}

// NewSynthesizer creates a Synthesizer using client for every slot.
func NewSynthesizer(client *Client, cfg Config) *Synthesizer {
	return &Synthesizer{client: client, config: cfg}
}

// Synthesize produces a complete quiz in curriculum order from an article's
// text, or from its title alone when the text is too short.
//
// It fails with *SynthesisError on a rate limit that outlasts a slot's
// attempt budget, on an auth or model failure, or when fewer than QuizSize
// slots were filled. A failed run returns no questions.
func (s *Synthesizer) Synthesize(ctx context.Context, text, title string) ([]Question, error) {
	fallback := utf8.RuneCountInString(text) < s.config.MinTextLength
	if fallback {
		log.Info().
			Str("title", title).
			Int("text_len", utf8.RuneCountInString(text)).
			Msg("article text too short, generating from title")
	}

	questions := make([]Question, 0, QuizSize)
	for i, difficulty := range Curriculum {
		q, err := s.fillSlot(ctx, i, difficulty, text, title, fallback)
		if err != nil {
			return nil, err
		}
		if q != nil {
			questions = append(questions, *q)
		}
	}

	if len(questions) < QuizSize {
		return nil, &SynthesisError{Reason: ReasonIncompleteQuiz, Count: len(questions)}
	}
	return questions, nil
}

// fillSlot runs up to SlotAttempts generation calls for one slot. A nil
// question with a nil error means the slot was given up on.
func (s *Synthesizer) fillSlot(ctx context.Context, slot int, difficulty Difficulty, text, title string, fallback bool) (*Question, error) {
	kind := KindQuestion
	params := Params{
		Section:    fmt.Sprintf("Section %d", slot+1),
		Text:       text,
		Difficulty: difficulty,
	}
	if fallback {
		kind = KindQuestionFallback
		params = Params{Title: title, Difficulty: difficulty}
	}

	var q *Question
	err := llm.Retry(ctx, newRetryPolicy(s.config, s.config.SlotAttempts), func(ctx context.Context, attempt int) error {
		res, err := s.client.Complete(ctx, kind, params)
		if err != nil {
			log.Debug().
				Err(err).
				Int("slot", slot+1).
				Str("difficulty", string(difficulty)).
				Int("attempt", attempt+1).
				Msg("question attempt failed")
			return err
		}
		q = res.Question
		return nil
	})

	if err == nil {
		q.Difficulty = difficulty
		if q.Section == "" {
			q.Section = params.Section
			if fallback {
				q.Section = title
			}
		}
		return q, nil
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	switch failure := Classify(err); failure {
	case RateLimited:
		return nil, &SynthesisError{Reason: ReasonRateLimitExceeded, Err: err}
	case AuthFailed:
		return nil, &SynthesisError{Reason: ReasonAuthFailed, Err: err}
	case ModelUnavailable:
		return nil, &SynthesisError{Reason: ReasonModelUnavailable, Err: err}
	default:
		log.Warn().
			Err(err).
			Int("slot", slot+1).
			Str("difficulty", string(difficulty)).
			Str("kind", string(failure)).
			Msg("question slot left empty")
		return nil, nil
	}
}

// newRetryPolicy is shared by question slots and topic extraction. Auth and
// model failures stop at once; rate limits wait RateLimitBackoff and other
// failures wait RetryBackoff.
func newRetryPolicy(cfg Config, attempts int) llm.RetryPolicy {
	return llm.RetryPolicy{
		MaxAttempts: attempts,
		Retryable: func(err error) bool {
			return !fatal(Classify(err))
		},
		Backoff: func(err error) time.Duration {
			if Classify(err) == RateLimited {
				return cfg.RateLimitBackoff
			}
			return cfg.RetryBackoff
		},
	}
}
