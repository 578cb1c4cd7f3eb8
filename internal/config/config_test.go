package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with no wikiquiz variables
// inherited from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"GOOGLE_API_KEY", "GEMINI_API_KEY", "WIKIQUIZ_LLM_PROVIDER", "WIKIQUIZ_GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 0.3, cfg.LLM.Temperature)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Quiz.RateLimitBackoff)
	assert.Equal(t, 3, cfg.Quiz.SlotAttempts)
	assert.Equal(t, 3, cfg.Quiz.TopicAttempts)
	assert.False(t, cfg.Quiz.Coalesce)
	assert.Equal(t, 10*time.Second, cfg.Scraper.Timeout)
	assert.NotEmpty(t, cfg.Scraper.UserAgent)
	assert.Empty(t, cfg.DBPath)

	assert.Error(t, cfg.LLM.Validate(), "gemini without a key must not validate")
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("WIKIQUIZ_SERVER_PORT", "9090")
	t.Setenv("WIKIQUIZ_LLM_PROVIDER", "Anthropic")
	t.Setenv("WIKIQUIZ_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("WIKIQUIZ_ANTHROPIC_MODEL", "claude-sonnet")
	t.Setenv("WIKIQUIZ_LLM_TEMPERATURE", "0.7")
	t.Setenv("WIKIQUIZ_LLM_TIMEOUT", "45s")
	t.Setenv("WIKIQUIZ_RATE_LIMIT_BACKOFF", "250ms")
	t.Setenv("WIKIQUIZ_COALESCE_GENERATION", "true")
	t.Setenv("WIKIQUIZ_DB", "/tmp/q.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "claude-sonnet", cfg.LLM.Anthropic.Model)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Quiz.RateLimitBackoff)
	assert.True(t, cfg.Quiz.Coalesce)
	assert.Equal(t, "/tmp/q.db", cfg.DBPath)
	assert.NoError(t, cfg.LLM.Validate())

	gen := cfg.Generation()
	assert.Equal(t, 0.7, gen.Temperature)
	assert.Equal(t, 45*time.Second, gen.CallTimeout)
	assert.Equal(t, 250*time.Millisecond, gen.RateLimitBackoff)
}

func TestLoad_UnprefixedGoogleKey(t *testing.T) {
	isolate(t)
	t.Setenv("GOOGLE_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
	assert.NoError(t, cfg.LLM.Validate())
}

func TestLoad_PrefixedKeyWins(t *testing.T) {
	isolate(t)
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("WIKIQUIZ_GEMINI_API_KEY", "prefixed")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.LLM.Gemini.APIKey)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := isolate(t)
	env := "GOOGLE_API_KEY=from-file\nSERVER_PORT=7000\nSLOT_ATTEMPTS=5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Quiz.SlotAttempts)
}
