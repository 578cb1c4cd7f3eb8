package quizgen

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/llm"
)

// TopicExtractor derives related topics from article content. It never
// fails: any error degrades to an empty result.
type TopicExtractor struct {
	client *Client
	config Config
}

// NewTopicExtractor creates a TopicExtractor using client.
func NewTopicExtractor(client *Client, cfg Config) *TopicExtractor {
	return &TopicExtractor{client: client, config: cfg}
}

// Extract returns exactly TopicCount topics and links, or both lists empty.
func (e *TopicExtractor) Extract(ctx context.Context, title, content string) RelatedTopics {
	var topics *RelatedTopics
	err := llm.Retry(ctx, newRetryPolicy(e.config, e.config.TopicAttempts), func(ctx context.Context, attempt int) error {
		res, err := e.client.Complete(ctx, KindTopics, Params{Title: title, Content: content})
		if err != nil {
			log.Debug().Err(err).Int("attempt", attempt+1).Msg("topic extraction attempt failed")
			return err
		}
		topics = res.Topics
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("topic extraction degraded to empty result")
		return emptyTopics()
	}
	return *topics
}
