// Package config loads wikiquiz settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/llm"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quizgen"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/wiki"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "WIKIQUIZ"

type Config struct {
	Server   Server
	DBPath   string
	LogLevel string
	LLM      llm.Config
	Quiz     Quiz
	Scraper  Scraper
}

type Server struct {
	Port string
}

type Quiz struct {
	RateLimitBackoff time.Duration
	SlotAttempts     int
	TopicAttempts    int
	Coalesce         bool
}

type Scraper struct {
	Timeout   time.Duration
	UserAgent string
}

// Generation returns the quizgen settings derived from c.
func (c *Config) Generation() quizgen.Config {
	g := quizgen.DefaultConfig()
	g.Temperature = c.LLM.Temperature
	g.CallTimeout = c.LLM.Timeout
	g.RateLimitBackoff = c.Quiz.RateLimitBackoff
	g.SlotAttempts = c.Quiz.SlotAttempts
	g.TopicAttempts = c.Quiz.TopicAttempts
	return g
}

// Load reads ./.env when present, then the environment, over defaults.
// Keys are read as WIKIQUIZ_<KEY>; the Gemini key also falls back to the
// unprefixed GOOGLE_API_KEY and GEMINI_API_KEY.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn().Err(err).Msg("error reading config file")
		}
	}

	cfg := &Config{
		Server:   Server{Port: v.GetString("SERVER_PORT")},
		DBPath:   v.GetString("DB"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Quiz: Quiz{
			RateLimitBackoff: v.GetDuration("RATE_LIMIT_BACKOFF"),
			SlotAttempts:     v.GetInt("SLOT_ATTEMPTS"),
			TopicAttempts:    v.GetInt("TOPIC_ATTEMPTS"),
			Coalesce:         v.GetBool("COALESCE_GENERATION"),
		},
		Scraper: Scraper{
			Timeout:   v.GetDuration("SCRAPE_TIMEOUT"),
			UserAgent: v.GetString("USER_AGENT"),
		},
	}

	cfg.LLM = llm.DefaultConfig()
	cfg.LLM.Provider = strings.ToLower(v.GetString("LLM_PROVIDER"))
	cfg.LLM.Temperature = v.GetFloat64("LLM_TEMPERATURE")
	cfg.LLM.Timeout = v.GetDuration("LLM_TIMEOUT")

	cfg.LLM.Gemini.APIKey = firstNonEmpty(
		v.GetString("GEMINI_API_KEY"),
		v.GetString("GOOGLE_API_KEY"),
		unprefixed(v, "GOOGLE_API_KEY"),
		unprefixed(v, "GEMINI_API_KEY"),
	)
	overrideString(v, "GEMINI_MODEL", &cfg.LLM.Gemini.Model)

	cfg.LLM.Anthropic.APIKey = v.GetString("ANTHROPIC_API_KEY")
	overrideString(v, "ANTHROPIC_MODEL", &cfg.LLM.Anthropic.Model)
	cfg.LLM.Anthropic.BaseURL = v.GetString("ANTHROPIC_BASE_URL")

	cfg.LLM.OpenAI.APIKey = v.GetString("OPENAI_API_KEY")
	overrideString(v, "OPENAI_MODEL", &cfg.LLM.OpenAI.Model)
	cfg.LLM.OpenAI.BaseURL = v.GetString("OPENAI_BASE_URL")

	cfg.LLM.OpenRouter.APIKey = v.GetString("OPENROUTER_API_KEY")
	overrideString(v, "OPENROUTER_MODEL", &cfg.LLM.OpenRouter.Model)
	cfg.LLM.OpenRouter.BaseURL = v.GetString("OPENROUTER_BASE_URL")

	log.Debug().
		Str("provider", cfg.LLM.Provider).
		Str("model", cfg.LLM.ModelName()).
		Str("port", cfg.Server.Port).
		Bool("coalesce", cfg.Quiz.Coalesce).
		Msg("config loaded")
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	q := quizgen.DefaultConfig()

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LLM_PROVIDER", d.Provider)
	v.SetDefault("LLM_TEMPERATURE", d.Temperature)
	v.SetDefault("LLM_TIMEOUT", d.Timeout)
	v.SetDefault("RATE_LIMIT_BACKOFF", q.RateLimitBackoff)
	v.SetDefault("SLOT_ATTEMPTS", q.SlotAttempts)
	v.SetDefault("TOPIC_ATTEMPTS", q.TopicAttempts)
	v.SetDefault("COALESCE_GENERATION", false)
	v.SetDefault("SCRAPE_TIMEOUT", wiki.DefaultTimeout)
	v.SetDefault("USER_AGENT", wiki.DefaultUserAgent)
}

// unprefixed reads an environment variable that does not carry EnvPrefix.
func unprefixed(v *viper.Viper, key string) string {
	_ = v.BindEnv("_raw_"+key, key)
	return v.GetString("_raw_" + key)
}

func overrideString(v *viper.Viper, key string, dst *string) {
	if s := v.GetString(key); s != "" {
		*dst = s
	}
}

func firstNonEmpty(vals ...string) string {
	for _, s := range vals {
		if s != "" {
			return s
		}
	}
	return ""
}
