package llm

import (
	"context"
	"fmt"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/store"
)

// NewProvider creates a Provider from configuration.
// When events is non-nil the provider is wrapped with request logging.
// Retry is not applied here: callers retry explicitly with Retry so each call
// site keeps its own fatal-versus-retryable policy.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if events == nil {
		return base, nil
	}
	return WithLogging(base, cfg.Provider, events), nil
}
