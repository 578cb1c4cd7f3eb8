package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/config"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/llm"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quiz"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quizgen"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/store"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/wiki"
)

// openStore opens the database selected by --db and the environment.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug().Str("path", dbPath).Msg("database opened")
	return st, nil
}

// newProvider builds the configured LLM provider. Every call is recorded
// in the store's event log.
func newProvider(ctx context.Context, c *config.Config, st *store.Store) (llm.Provider, error) {
	p, err := llm.NewProvider(ctx, c.LLM, st.EventRepo())
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	log.Info().Str("provider", c.LLM.Provider).Str("model", p.ModelID()).Msg("LLM provider ready")
	return p, nil
}

// newService wires the scraper, generation pipeline and cache tiers.
func newService(c *config.Config, st *store.Store, provider llm.Provider) *quiz.Service {
	gen := c.Generation()
	client := quizgen.NewClient(provider, gen)

	return quiz.NewService(quiz.Deps{
		Articles: st.Articles(),
		Quizzes:  st.Quizzes(),
		Attempts: st.Attempts(),
		Scraper:  newScraper(c),
		Gen:      quizgen.NewSynthesizer(client, gen),
		Topics:   quizgen.NewTopicExtractor(client, gen),
		Model:    client.ModelID(),
		Coalesce: c.Quiz.Coalesce,
	})
}

// newStoreService serves commands that only read the store or score
// attempts. Generation and topic extraction are not available on it.
func newStoreService(st *store.Store) *quiz.Service {
	return quiz.NewService(quiz.Deps{
		Articles: st.Articles(),
		Quizzes:  st.Quizzes(),
		Attempts: st.Attempts(),
	})
}

func newScraper(c *config.Config) *wiki.Scraper {
	return wiki.NewScraper(&http.Client{Timeout: c.Scraper.Timeout}, c.Scraper.UserAgent)
}

// withService opens the store and a fully wired service for the duration
// of fn.
func withService(cmd *cobra.Command, fn func(ctx context.Context, svc *quiz.Service) error) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	provider, err := newProvider(ctx, cfg, st)
	if err != nil {
		return err
	}
	return fn(ctx, newService(cfg, st, provider))
}
