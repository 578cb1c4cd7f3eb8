// Package quiz orchestrates quiz requests: URL validation, the two-tier
// article/quiz cache, generation on a miss, scoring and history.
package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quizgen"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/store"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/wiki"
)

// Scraper fetches an article page.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*wiki.Page, error)
}

// Generator produces the questions of a quiz.
type Generator interface {
	Synthesize(ctx context.Context, text, title string) ([]quizgen.Question, error)
}

// TopicSource extracts related topics. It never fails.
type TopicSource interface {
	Extract(ctx context.Context, title, content string) quizgen.RelatedTopics
}

// Result is a quiz as returned to callers.
type Result struct {
	ID            int64              `json:"id"`
	URL           string             `json:"url"`
	Title         string             `json:"title"`
	Questions     []quizgen.Question `json:"quiz"`
	RelatedTopics []string           `json:"related_topics"`
	RelatedLinks  []string           `json:"related_links"`
	ScrapedText   string             `json:"scraped_text,omitempty"`
	Model         string             `json:"model,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Deps are the collaborators of a Service.
type Deps struct {
	Articles store.ArticleRepo
	Quizzes  store.QuizRepo
	Attempts store.AttemptRepo
	Scraper  Scraper
	Gen      Generator
	Topics   TopicSource

	// Model is recorded with every generated quiz.
	Model string

	// Coalesce joins concurrent first requests for the same URL into one
	// scrape and synthesis.
	Coalesce bool
}

// Service implements quiz requests over the article and quiz cache tiers.
type Service struct {
	deps  Deps
	group singleflight.Group
}

// NewService creates a Service.
func NewService(deps Deps) *Service {
	return &Service{deps: deps}
}

// Generate returns the quiz for a Wikipedia URL, generating and storing it
// on the first request. The URL is validated before any cache or network
// activity. Related topics are extracted on every call and never cached.
func (s *Service) Generate(ctx context.Context, rawURL string) (*Result, error) {
	url, err := wiki.ValidateURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		article *store.Article
		qz      *store.Quiz
	)
	if s.deps.Coalesce {
		article, qz, err = s.coalesced(ctx, url)
	} else {
		article, qz, err = s.lookupOrGenerate(ctx, url)
	}
	if err != nil {
		return nil, err
	}

	res, err := toResult(article, qz)
	if err != nil {
		return nil, err
	}
	s.attachTopics(ctx, res, article)
	return res, nil
}

type cached struct {
	article *store.Article
	quiz    *store.Quiz
}

// coalesced joins the in-flight generation for url, starting one if none is
// running. The shared work is detached from the caller that started it, so
// one cancelled caller does not fail the others; each caller stops waiting
// when its own ctx is done.
func (s *Service) coalesced(ctx context.Context, url string) (*store.Article, *store.Quiz, error) {
	ch := s.group.DoChan(url, func() (any, error) {
		a, q, err := s.lookupOrGenerate(context.WithoutCancel(ctx), url)
		if err != nil {
			return nil, err
		}
		return cached{a, q}, nil
	})

	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, nil, r.Err
		}
		if r.Shared {
			log.Debug().Str("url", url).Msg("joined in-flight generation")
		}
		c := r.Val.(cached)
		return c.article, c.quiz, nil
	}
}

// lookupOrGenerate walks the article tier then the quiz tier, filling each
// on a miss. Nothing is written when scraping or synthesis fails.
func (s *Service) lookupOrGenerate(ctx context.Context, url string) (*store.Article, *store.Quiz, error) {
	article, err := s.deps.Articles.GetByURL(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup article: %w", err)
	}

	if article == nil {
		log.Info().Str("url", url).Msg("article cache miss, scraping")
		page, err := s.deps.Scraper.Scrape(ctx, url)
		if err != nil {
			return nil, nil, &UpstreamError{URL: url, Err: err}
		}
		article, err = s.deps.Articles.Create(ctx, &store.Article{
			URL:         url,
			Title:       page.Title,
			ScrapedText: page.Text,
			RawHTML:     page.RawHTML,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("store article: %w", err)
		}
	} else {
		log.Debug().Str("url", url).Int64("article_id", article.ID).Msg("article cache hit")
	}

	qz, err := s.deps.Quizzes.GetByArticle(ctx, article.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup quiz: %w", err)
	}
	if qz != nil {
		log.Debug().Int64("quiz_id", qz.ID).Msg("quiz cache hit")
		return article, qz, nil
	}

	log.Info().Int64("article_id", article.ID).Str("title", article.Title).Msg("quiz cache miss, generating")
	questions, err := s.deps.Gen.Synthesize(ctx, article.ScrapedText, article.Title)
	if err != nil {
		return nil, nil, err
	}

	encoded, err := json.Marshal(questions)
	if err != nil {
		return nil, nil, fmt.Errorf("encode questions: %w", err)
	}
	qz, err = s.deps.Quizzes.Create(ctx, &store.Quiz{
		ArticleID:     article.ID,
		Questions:     encoded,
		Model:         s.deps.Model,
		PromptVersion: quizgen.PromptVersion,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("store quiz: %w", err)
	}
	return article, qz, nil
}

// Get returns a stored quiz by id with freshly extracted topics.
func (s *Service) Get(ctx context.Context, id int64) (*Result, error) {
	qz, err := s.deps.Quizzes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	if qz == nil {
		return nil, fmt.Errorf("quiz %d: %w", id, ErrNotFound)
	}

	article, err := s.deps.Articles.Get(ctx, qz.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, fmt.Errorf("article %d for quiz %d: %w", qz.ArticleID, id, ErrNotFound)
	}

	res, err := toResult(article, qz)
	if err != nil {
		return nil, err
	}
	res.ScrapedText = article.ScrapedText
	s.attachTopics(ctx, res, article)
	return res, nil
}

// List returns quiz history newest first.
func (s *Service) List(ctx context.Context, limit int) ([]store.QuizSummary, error) {
	return s.deps.Quizzes.List(ctx, store.QueryOpts{Limit: limit})
}

// Attempt scores answers against quiz id and stores the attempt.
func (s *Service) Attempt(ctx context.Context, id int64, answers map[string]string) (*Score, error) {
	qz, err := s.deps.Quizzes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	if qz == nil {
		return nil, fmt.Errorf("quiz %d: %w", id, ErrNotFound)
	}

	questions, err := decodeQuestions(qz)
	if err != nil {
		return nil, err
	}

	score := ScoreAnswers(questions, answers)
	score.QuizID = id

	stored, err := s.deps.Attempts.Create(ctx, &store.Attempt{
		QuizID:  id,
		Score:   score.Score,
		Total:   score.Total,
		Answers: answers,
	})
	if err != nil {
		return nil, fmt.Errorf("store attempt: %w", err)
	}
	score.AttemptID = stored.ID

	log.Info().
		Int64("quiz_id", id).
		Int("score", score.Score).
		Int("total", score.Total).
		Msg("attempt scored")
	return &score, nil
}

// Attempts returns the stored attempts for quiz id, newest first.
func (s *Service) Attempts(ctx context.Context, id int64, limit int) ([]store.Attempt, error) {
	qz, err := s.deps.Quizzes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	if qz == nil {
		return nil, fmt.Errorf("quiz %d: %w", id, ErrNotFound)
	}
	return s.deps.Attempts.ListByQuiz(ctx, id, store.QueryOpts{Limit: limit})
}

func (s *Service) attachTopics(ctx context.Context, res *Result, article *store.Article) {
	topics := s.deps.Topics.Extract(ctx, article.Title, article.ScrapedText)
	if topics.Degraded() {
		log.Warn().Int64("quiz_id", res.ID).Msg("returning quiz without related topics")
	}
	res.RelatedTopics = topics.Topics
	res.RelatedLinks = topics.Links
}

func toResult(article *store.Article, qz *store.Quiz) (*Result, error) {
	questions, err := decodeQuestions(qz)
	if err != nil {
		return nil, err
	}
	return &Result{
		ID:        qz.ID,
		URL:       article.URL,
		Title:     article.Title,
		Questions: questions,
		Model:     qz.Model,
		CreatedAt: qz.CreatedAt,
	}, nil
}

func decodeQuestions(qz *store.Quiz) ([]quizgen.Question, error) {
	var questions []quizgen.Question
	if err := json.Unmarshal(qz.Questions, &questions); err != nil {
		return nil, fmt.Errorf("decode quiz %d: %w", qz.ID, err)
	}
	return questions, nil
}
