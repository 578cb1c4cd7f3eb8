package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quiz"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quizgen"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/store"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/wiki"
)

type fakeService struct {
	generateErr error
	gotURL      string
	gotAnswers  map[string]string
	gotLimit    int
}

var created = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func (f *fakeService) Generate(_ context.Context, url string) (*quiz.Result, error) {
	f.gotURL = url
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return &quiz.Result{
		ID:            7,
		URL:           url,
		Title:         "Paris",
		Questions:     []quizgen.Question{{Question: "Q", Options: []string{"A) 1", "B) 2", "C) 3", "D) 4"}, Answer: "A", Difficulty: quizgen.Easy}},
		RelatedTopics: []string{},
		RelatedLinks:  []string{},
		CreatedAt:     created,
	}, nil
}

func (f *fakeService) Get(_ context.Context, id int64) (*quiz.Result, error) {
	if id != 7 {
		return nil, fmt.Errorf("quiz %d: %w", id, quiz.ErrNotFound)
	}
	return &quiz.Result{ID: 7, Title: "Paris", ScrapedText: "Paris is...", RelatedTopics: []string{"France"}, RelatedLinks: []string{"https://en.wikipedia.org/wiki/France"}}, nil
}

func (f *fakeService) List(_ context.Context, limit int) ([]store.QuizSummary, error) {
	f.gotLimit = limit
	return []store.QuizSummary{
		{ID: 2, Title: "Lyon", URL: "https://en.wikipedia.org/wiki/Lyon", CreatedAt: created},
		{ID: 1, Title: "Paris", URL: "https://en.wikipedia.org/wiki/Paris", CreatedAt: created},
	}, nil
}

func (f *fakeService) Attempt(_ context.Context, id int64, answers map[string]string) (*quiz.Score, error) {
	f.gotAnswers = answers
	if id != 7 {
		return nil, quiz.ErrNotFound
	}
	s := quiz.ScoreAnswers([]quizgen.Question{{Answer: "A"}, {Answer: "B"}}, answers)
	s.QuizID, s.AttemptID = id, 3
	return &s, nil
}

func (f *fakeService) Attempts(_ context.Context, id int64, _ int) ([]store.Attempt, error) {
	return []store.Attempt{{ID: 3, QuizID: id, Score: 1, Total: 3, Answers: map[string]string{"0": "A"}, CreatedAt: created}}, nil
}

func newTestServer(svc QuizService) *gin.Engine {
	r := NewEngine()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(&fakeService{}), http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	h := decode[HealthResponse](t, w)
	assert.Equal(t, "running", h.Status)
	assert.Equal(t, APIVersion, h.Version)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newTestServer(&fakeService{}).ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestGenerateQuiz(t *testing.T) {
	svc := &fakeService{}
	w := do(t, newTestServer(svc), http.MethodPost, "/api/quizzes", `{"url":"https://en.wikipedia.org/wiki/Paris"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://en.wikipedia.org/wiki/Paris", svc.gotURL)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 7, body["id"])
	assert.Len(t, body["quiz"], 1)
	assert.Equal(t, []any{}, body["related_topics"])
	assert.NotContains(t, body, "scraped_text")
}

func TestGenerateQuiz_BadBody(t *testing.T) {
	for _, body := range []string{``, `{`, `{"link":"x"}`} {
		w := do(t, newTestServer(&fakeService{}), http.MethodPost, "/api/quizzes", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
		assert.Equal(t, "invalid_input", decode[ErrorResponse](t, w).Error)
	}
}

func TestGenerateQuiz_ErrorStatuses(t *testing.T) {
	tests := []struct {
		err    error
		status int
		cat    quiz.Category
	}{
		{fmt.Errorf("%w: %v", quiz.ErrInvalidInput, wiki.ErrInvalidURL), http.StatusUnprocessableEntity, quiz.CategoryInvalidInput},
		{&quiz.UpstreamError{URL: "u", Err: wiki.ErrNoContent}, http.StatusBadGateway, quiz.CategoryUpstreamUnavailable},
		{&quizgen.SynthesisError{Reason: quizgen.ReasonRateLimitExceeded}, http.StatusTooManyRequests, quiz.CategoryRateLimited},
		{&quizgen.SynthesisError{Reason: quizgen.ReasonAuthFailed}, http.StatusServiceUnavailable, quiz.CategoryAuthFailed},
		{&quizgen.SynthesisError{Reason: quizgen.ReasonModelUnavailable}, http.StatusServiceUnavailable, quiz.CategoryModelUnavailable},
		{&quizgen.SynthesisError{Reason: quizgen.ReasonIncompleteQuiz, Count: 5}, http.StatusInternalServerError, quiz.CategoryIncompleteQuiz},
		{fmt.Errorf("store quiz: disk I/O error"), http.StatusInternalServerError, quiz.CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.cat), func(t *testing.T) {
			svc := &fakeService{generateErr: tt.err}
			w := do(t, newTestServer(svc), http.MethodPost, "/api/quizzes", `{"url":"https://en.wikipedia.org/wiki/Paris"}`)

			assert.Equal(t, tt.status, w.Code)
			resp := decode[ErrorResponse](t, w)
			assert.Equal(t, string(tt.cat), resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.NotContains(t, resp.Message, "disk I/O")
		})
	}
}

func TestListQuizzes(t *testing.T) {
	svc := &fakeService{}
	w := do(t, newTestServer(svc), http.MethodGet, "/api/quizzes?limit=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]HistoryItem](t, w)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Equal(t, "Lyon", items[0].Title)
	assert.Equal(t, created, items[1].CreatedAt)
	assert.Equal(t, 5, svc.gotLimit)

	w = do(t, newTestServer(svc), http.MethodGet, "/api/quizzes?limit=-1", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetQuiz(t *testing.T) {
	r := newTestServer(&fakeService{})

	w := do(t, r, http.MethodGet, "/api/quizzes/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[quiz.Result](t, w)
	assert.Equal(t, "Paris is...", res.ScrapedText)
	assert.Equal(t, []string{"France"}, res.RelatedTopics)

	w = do(t, r, http.MethodGet, "/api/quizzes/8", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[ErrorResponse](t, w).Error)

	w = do(t, r, http.MethodGet, "/api/quizzes/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSubmitAttempt(t *testing.T) {
	svc := &fakeService{}
	r := newTestServer(svc)

	w := do(t, r, http.MethodPost, "/api/quizzes/7/attempt", `{"answers":{"0":"A","1":"C"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 7, body["quiz_id"])
	assert.EqualValues(t, 3, body["attempt_id"])
	assert.EqualValues(t, 1, body["score"])
	assert.EqualValues(t, 2, body["total"])
	assert.EqualValues(t, 50, body["percentage"])

	breakdown := body["breakdown"].([]any)
	require.Len(t, breakdown, 2)
	second := breakdown[1].(map[string]any)
	assert.Equal(t, "C", second["user_answer"])
	assert.Equal(t, "B", second["correct_answer"])
	assert.Equal(t, false, second["is_correct"])
}

func TestSubmitAttempt_EmptyAnswers(t *testing.T) {
	svc := &fakeService{}
	w := do(t, newTestServer(svc), http.MethodPost, "/api/quizzes/7/attempt", `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, svc.gotAnswers)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 0, body["score"])
	first := body["breakdown"].([]any)[0].(map[string]any)
	assert.Nil(t, first["user_answer"])
}

func TestSubmitAttempt_NotFound(t *testing.T) {
	w := do(t, newTestServer(&fakeService{}), http.MethodPost, "/api/quizzes/9/attempt", `{"answers":{}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAttempts(t *testing.T) {
	w := do(t, newTestServer(&fakeService{}), http.MethodGet, "/api/quizzes/7/attempts", "")

	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]AttemptItem](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].QuizID)
	assert.Equal(t, 33.33, items[0].Percentage)
	assert.Equal(t, "A", items[0].Answers["0"])
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/quizzes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	newTestServer(&fakeService{}).ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
