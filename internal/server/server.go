// Package server exposes quiz generation, history and attempts over HTTP.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quiz"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/store"
)

// APIVersion is reported by the health endpoint.
const APIVersion = "1.0"

// QuizService is the request layer the handlers call into.
type QuizService interface {
	Generate(ctx context.Context, url string) (*quiz.Result, error)
	Get(ctx context.Context, id int64) (*quiz.Result, error)
	List(ctx context.Context, limit int) ([]store.QuizSummary, error)
	Attempt(ctx context.Context, id int64, answers map[string]string) (*quiz.Score, error)
	Attempts(ctx context.Context, id int64, limit int) ([]store.Attempt, error)
}

var statusByCategory = map[quiz.Category]int{
	quiz.CategoryInvalidInput:        http.StatusUnprocessableEntity,
	quiz.CategoryNotFound:            http.StatusNotFound,
	quiz.CategoryRateLimited:         http.StatusTooManyRequests,
	quiz.CategoryUpstreamUnavailable: http.StatusBadGateway,
	quiz.CategoryModelUnavailable:    http.StatusServiceUnavailable,
	quiz.CategoryAuthFailed:          http.StatusServiceUnavailable,
	quiz.CategoryIncompleteQuiz:      http.StatusInternalServerError,
	quiz.CategoryInternal:            http.StatusInternalServerError,
}

type Handler struct {
	svc QuizService
}

func NewHandler(svc QuizService) *Handler {
	return &Handler{svc: svc}
}

// NewEngine builds the gin engine with CORS, request ids, request logging
// and recovery.
func NewEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(requestID())
	r.Use(requestLogger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:   []string{"Content-Length", requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	return r
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Health)

	quizzes := r.Group("/api/quizzes")
	quizzes.POST("", h.GenerateQuiz)
	quizzes.GET("", h.ListQuizzes)
	quizzes.GET("/:id", h.GetQuiz)
	quizzes.POST("/:id/attempt", h.SubmitAttempt)
	quizzes.GET("/:id/attempts", h.ListAttempts)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "running",
		Message: "Backend is alive",
		Version: APIVersion,
	})
}

func (h *Handler) GenerateQuiz(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("failed to bind GenerateRequest")
		badRequest(c, "Request body must be JSON with a \"url\" field.")
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), req.URL)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListQuizzes(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	summaries, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	items := make([]HistoryItem, 0, len(summaries))
	if err := copier.Copy(&items, &summaries); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetQuiz(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) SubmitAttempt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("failed to bind AttemptRequest")
		badRequest(c, "Request body must be JSON with an \"answers\" object.")
		return
	}
	if req.Answers == nil {
		req.Answers = map[string]string{}
	}

	score, err := h.svc.Attempt(c.Request.Context(), id, req.Answers)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *Handler) ListAttempts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	attempts, err := h.svc.Attempts(c.Request.Context(), id, limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	items := make([]AttemptItem, 0, len(attempts))
	for _, a := range attempts {
		var item AttemptItem
		if err := copier.Copy(&item, &a); err != nil {
			h.fail(c, err)
			return
		}
		item.Percentage = quiz.Percentage(a.Score, a.Total)
		items = append(items, item)
	}
	c.JSON(http.StatusOK, items)
}

// fail writes the categorized error. Internal detail goes to the log only.
func (h *Handler) fail(c *gin.Context, err error) {
	cat, msg := quiz.Categorize(err)
	status := statusByCategory[cat]

	_ = c.Error(err)
	evt := log.Warn()
	if status >= http.StatusInternalServerError {
		evt = log.Error()
	}
	evt.Err(err).Str("request_id", c.GetString("request_id")).Str("category", string(cat)).Msg("request failed")

	c.JSON(status, ErrorResponse{Error: string(cat), Message: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: string(quiz.CategoryInvalidInput), Message: msg})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		badRequest(c, "Quiz id must be a positive integer.")
		return 0, false
	}
	return id, true
}

func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		badRequest(c, "limit must be a non-negative integer.")
		return 0, false
	}
	return n, true
}
