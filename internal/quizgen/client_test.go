package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/llm"
)

func questionJSON(answer string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"question": "Which river flows through Paris?",
		"options": ["A) Seine", "B) Thames", "C) Danube", "D) Tiber"],
		"answer": %q,
		"difficulty": "easy",
		"section": "Geography",
		"explanation": "The Seine flows through the centre of Paris."
	}`, answer))
}

func topicsJSON(n int) json.RawMessage {
	topics := make([]string, n)
	links := make([]string, n)
	for i := range topics {
		topics[i] = fmt.Sprintf("Topic %d", i+1)
		links[i] = fmt.Sprintf("https://en.wikipedia.org/wiki/Topic_%d", i+1)
	}
	b, _ := json.Marshal(map[string]any{"topics": topics, "wiki_links": links})
	return b
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RateLimitBackoff = 0
	cfg.RetryBackoff = 0
	return cfg
}

func TestComplete_Question(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionJSON("A")})
	c := NewClient(mock, testConfig())

	res, err := c.Complete(context.Background(), KindQuestion, Params{
		Section:    "Section 1",
		Text:       "Paris is the capital of France. The Seine flows through it.",
		Difficulty: Easy,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Question == nil || res.Topics != nil {
		t.Fatalf("unexpected result shape: %+v", res)
	}
	q := res.Question
	if q.Question != "Which river flows through Paris?" {
		t.Errorf("question = %q", q.Question)
	}
	if q.Answer != "A" || len(q.Options) != 4 {
		t.Errorf("answer/options = %q / %v", q.Answer, q.Options)
	}

	call := mock.Calls[0]
	if call.Schema != QuestionSchema {
		t.Error("expected question schema on request")
	}
	if !strings.Contains(call.Messages[0].Content, "The Seine flows through it.") {
		t.Errorf("prompt missing text:\n%s", call.Messages[0].Content)
	}
	if call.Temperature != 0.3 {
		t.Errorf("temperature = %v, want 0.3", call.Temperature)
	}
}

func TestComplete_StripsFences(t *testing.T) {
	fenced := "```json\n" + string(questionJSON("B")) + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(fenced)})
	c := NewClient(mock, testConfig())

	res, err := c.Complete(context.Background(), KindQuestionFallback, Params{Title: "Paris", Difficulty: Hard})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Question.Answer != "B" {
		t.Errorf("answer = %q, want B", res.Question.Answer)
	}
}

func TestComplete_NormalizesAnswerLabel(t *testing.T) {
	for _, raw := range []string{"c", " C ", "C) Danube", "C."} {
		mock := llm.NewMockProvider(llm.MockResponse{Content: questionJSON(raw)})
		c := NewClient(mock, testConfig())

		res, err := c.Complete(context.Background(), KindQuestion, Params{Difficulty: Easy})
		if err != nil {
			t.Fatalf("answer %q: unexpected error: %v", raw, err)
		}
		if res.Question.Answer != "C" {
			t.Errorf("answer %q normalized to %q, want C", raw, res.Question.Answer)
		}
	}
}

func TestComplete_MalformedResponses(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `Sure! Here is your question.`},
		{"missing question", `{"options":["A) a","B) b","C) c","D) d"],"answer":"A"}`},
		{"empty question", `{"question":"  ","options":["A) a","B) b","C) c","D) d"],"answer":"A"}`},
		{"three options", `{"question":"Q","options":["A) a","B) b","C) c"],"answer":"A"}`},
		{"duplicate options", `{"question":"Q","options":["A) a","B) b","C) B","D) d"],"answer":"A"}`},
		{"answer out of range", `{"question":"Q","options":["A) a","B) b","C) c","D) d"],"answer":"E"}`},
		{"answer is text", `{"question":"Q","options":["A) a","B) b","C) c","D) d"],"answer":"Paris"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			c := NewClient(mock, testConfig())

			_, err := c.Complete(context.Background(), KindQuestion, Params{Difficulty: Easy})
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("expected GenerationError, got %T (%v)", err, err)
			}
			if genErr.Kind != MalformedResponse {
				t.Errorf("kind = %q, want %q", genErr.Kind, MalformedResponse)
			}
		})
	}
}

func TestComplete_BackendErrorsClassified(t *testing.T) {
	tests := []struct {
		err  error
		want FailureKind
	}{
		{&llm.ErrRateLimit{}, RateLimited},
		{&llm.ErrAuth{StatusCode: 401}, AuthFailed},
		{&llm.ErrModelNotFound{Model: "x"}, ModelUnavailable},
		{&llm.ErrProviderUnavailable{}, Transient},
	}
	for _, tt := range tests {
		mock := llm.NewMockProvider(llm.MockResponse{Err: tt.err})
		c := NewClient(mock, testConfig())

		_, err := c.Complete(context.Background(), KindQuestion, Params{})
		if got := Classify(err); got != tt.want {
			t.Errorf("%T classified as %q, want %q", tt.err, got, tt.want)
		}
		if !errors.Is(err, tt.err) {
			t.Errorf("GenerationError does not wrap %T", tt.err)
		}
	}
}

func TestComplete_Topics(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: topicsJSON(7)})
	c := NewClient(mock, testConfig())

	res, err := c.Complete(context.Background(), KindTopics, Params{Title: "Paris", Content: "Paris content"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Topics.Topics) != TopicCount || len(res.Topics.Links) != TopicCount {
		t.Fatalf("expected excess truncated to %d, got %d/%d", TopicCount, len(res.Topics.Topics), len(res.Topics.Links))
	}
	if res.Topics.Links[4] != "https://en.wikipedia.org/wiki/Topic_5" {
		t.Errorf("links not positionally paired: %v", res.Topics.Links)
	}
	if mock.Calls[0].Schema != TopicsSchema {
		t.Error("expected topics schema on request")
	}
}

func TestComplete_TooFewTopicsIsMalformed(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: topicsJSON(4)})
	c := NewClient(mock, testConfig())

	_, err := c.Complete(context.Background(), KindTopics, Params{Title: "Paris"})
	if Classify(err) != MalformedResponse {
		t.Fatalf("expected MalformedResponse, got %v", err)
	}
}

func TestComplete_UnknownKind(t *testing.T) {
	c := NewClient(llm.NewMockProvider(), testConfig())
	if _, err := c.Complete(context.Background(), PromptKind("essay"), Params{}); err == nil {
		t.Fatal("expected error for unknown prompt kind")
	}
}

func TestComplete_SetsPurpose(t *testing.T) {
	var got string
	p := purposeProbe{fn: func(ctx context.Context) { got = llm.PurposeFrom(ctx) }}
	c := NewClient(p, testConfig())

	_, _ = c.Complete(context.Background(), KindTopics, Params{})
	if got != string(KindTopics) {
		t.Errorf("purpose = %q, want %q", got, KindTopics)
	}
}

// purposeProbe is a Provider that inspects the request context.
type purposeProbe struct {
	fn func(ctx context.Context)
}

func (p purposeProbe) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.fn(ctx)
	return nil, &llm.ErrProviderUnavailable{}
}

func (p purposeProbe) ModelID() string { return "probe" }
