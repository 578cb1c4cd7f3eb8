package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/llm"
)

// Client performs single generation calls: one prompt, one backend call,
// one parsed result. It never retries.
type Client struct {
	provider llm.Provider
	config   Config
}

// NewClient creates a Client over the given provider.
func NewClient(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, config: cfg}
}

// ModelID returns the model identifier of the underlying provider.
func (c *Client) ModelID() string {
	return c.provider.ModelID()
}

// questionOutput is the raw response before normalization and validation.
type questionOutput struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Section     string   `json:"section"`
	Explanation string   `json:"explanation"`
}

type topicsOutput struct {
	Topics    []string `json:"topics"`
	WikiLinks []string `json:"wiki_links"`
}

// Complete renders the prompt for kind, calls the backend once and parses
// the response. Every failure is a *GenerationError.
func (c *Client) Complete(ctx context.Context, kind PromptKind, p Params) (*Result, error) {
	var (
		system string
		user   string
		schema *llm.Schema
	)
	switch kind {
	case KindQuestion:
		system, schema = questionSystemPrompt, QuestionSchema
		user = buildQuestionMessage(p.Section, p.Text, p.Difficulty, c.config.MaxQuestionText)
	case KindQuestionFallback:
		system, schema = questionSystemPrompt, QuestionSchema
		user = buildFallbackMessage(p.Title, p.Difficulty)
	case KindTopics:
		system, schema = topicsSystemPrompt, TopicsSchema
		user = buildTopicsMessage(p.Title, p.Content, c.config.MaxTopicContent)
	default:
		return nil, &GenerationError{Kind: Transient, Err: fmt.Errorf("unknown prompt kind %q", kind)}
	}

	ctx = llm.WithPurpose(ctx, string(kind))
	if c.config.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.CallTimeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      schema,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return nil, &GenerationError{Kind: Classify(err), Err: err}
	}

	raw := json.RawMessage(StripFences(string(resp.Content)))
	if err := llm.ValidateJSON(schema, raw); err != nil {
		return nil, &GenerationError{Kind: MalformedResponse, Err: err}
	}

	if kind == KindTopics {
		topics, err := parseTopics(raw)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: kind, Topics: topics}, nil
	}

	q, err := c.parseQuestion(raw)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: kind, Question: q}, nil
}

func (c *Client) parseQuestion(raw json.RawMessage) (*Question, error) {
	var out questionOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, malformed("decode question: %w", err)
	}

	q := &Question{
		Question:    strings.TrimSpace(out.Question),
		Options:     out.Options,
		Answer:      NormalizeLabel(out.Answer),
		Difficulty:  Difficulty(strings.ToLower(strings.TrimSpace(out.Difficulty))),
		Section:     strings.TrimSpace(out.Section),
		Explanation: strings.TrimSpace(out.Explanation),
	}
	for i := range q.Options {
		q.Options[i] = strings.TrimSpace(q.Options[i])
	}

	for _, v := range c.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return nil, &GenerationError{Kind: MalformedResponse, Err: verr}
		}
	}
	return q, nil
}

func parseTopics(raw json.RawMessage) (*RelatedTopics, error) {
	var out topicsOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, malformed("decode topics: %w", err)
	}

	topics := firstN(out.Topics, TopicCount)
	links := firstN(out.WikiLinks, TopicCount)
	if len(topics) < TopicCount || len(links) < TopicCount {
		return nil, malformed("need %d topics and links, got %d and %d", TopicCount, len(topics), len(links))
	}
	return &RelatedTopics{Topics: topics, Links: links}, nil
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
