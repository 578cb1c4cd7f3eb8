package llm

import (
	"errors"
	"fmt"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestMapStatus(t *testing.T) {
	cause := errors.New("upstream")

	var rl *ErrRateLimit
	assert.ErrorAs(t, mapStatus(429, "m", cause), &rl)

	var auth *ErrAuth
	assert.ErrorAs(t, mapStatus(401, "m", cause), &auth)
	assert.Equal(t, 401, auth.StatusCode)
	assert.ErrorAs(t, mapStatus(403, "m", cause), &auth)

	var nf *ErrModelNotFound
	assert.ErrorAs(t, mapStatus(404, "gemini-9", cause), &nf)
	assert.Equal(t, "gemini-9", nf.Model)

	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, mapStatus(503, "m", cause), &unavail)
	assert.ErrorAs(t, mapStatus(0, "m", cause), &unavail)

	assert.ErrorIs(t, mapStatus(500, "m", cause), cause)
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&ErrModelNotFound{Model: "x"}).Error(), `"x"`)
	assert.Equal(t, "LLM provider unavailable", (&ErrProviderUnavailable{}).Error())
	assert.Contains(t, (&ErrAuth{StatusCode: 403}).Error(), "403")
}

func TestStatusCode(t *testing.T) {
	code, ok := StatusCode(fmt.Errorf("wrapped: %w", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}))
	assert.True(t, ok)
	assert.Equal(t, 429, code)

	code, ok = StatusCode(&ErrProviderUnavailable{Err: &openai.APIError{HTTPStatusCode: 503}})
	assert.True(t, ok)
	assert.Equal(t, 503, code)

	_, ok = StatusCode(errors.New("plain"))
	assert.False(t, ok)
}
