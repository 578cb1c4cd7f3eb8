package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // id > After
	Before int64     // id < Before
	From   time.Time // created_at >= From
	To     time.Time // created_at <= To
}

// Article is a scraped Wikipedia page. One row per canonical URL.
type Article struct {
	ID          int64
	URL         string
	Title       string
	ScrapedText string
	RawHTML     string
	CreatedAt   time.Time
}

// Quiz is the generated question set for one article. Questions holds the
// JSON-encoded question list exactly as it was produced.
type Quiz struct {
	ID            int64
	ArticleID     int64
	Questions     json.RawMessage
	Model         string
	PromptVersion string
	CreatedAt     time.Time
}

// QuizSummary is one row of the quiz history listing.
type QuizSummary struct {
	ID        int64
	Title     string
	URL       string
	CreatedAt time.Time
}

// Attempt is a scored submission against a quiz. Answers is the sparse
// question index -> label mapping as submitted.
type Attempt struct {
	ID        int64
	QuizID    int64
	Score     int
	Total     int
	Answers   map[string]string
	CreatedAt time.Time
}

// ArticleRepo is the article tier of the cache.
type ArticleRepo interface {
	// GetByURL returns the article stored for url, or nil if none exists.
	GetByURL(ctx context.Context, url string) (*Article, error)

	// Get returns the article with the given id, or nil if none exists.
	Get(ctx context.Context, id int64) (*Article, error)

	// Create stores a new article. If an article with the same URL was
	// stored concurrently, the existing row is returned instead.
	Create(ctx context.Context, a *Article) (*Article, error)
}

// QuizRepo is the quiz tier of the cache.
type QuizRepo interface {
	// GetByArticle returns the quiz generated for articleID, or nil.
	GetByArticle(ctx context.Context, articleID int64) (*Quiz, error)

	// Get returns the quiz with the given id, or nil if none exists.
	Get(ctx context.Context, id int64) (*Quiz, error)

	// Create stores a new quiz. If a quiz for the same article was stored
	// concurrently, the existing row is returned instead.
	Create(ctx context.Context, q *Quiz) (*Quiz, error)

	// List returns quiz history newest first.
	List(ctx context.Context, opts QueryOpts) ([]QuizSummary, error)
}

// AttemptRepo stores scored attempts.
type AttemptRepo interface {
	Create(ctx context.Context, a *Attempt) (*Attempt, error)

	// ListByQuiz returns attempts for quizID newest first.
	ListByQuiz(ctx context.Context, quizID int64, opts QueryOpts) ([]Attempt, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates token usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
