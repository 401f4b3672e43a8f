package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
	"golang.org/x/text/language"
)

// Config holds runtime configuration for the advice pipeline and its HTTP surface.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Backend
	BackendProvider  string        `env:"BACKEND_PROVIDER" envDefault:"huggingface"` // "huggingface", "gemini" or "openai"
	BackendURL       string        `env:"BACKEND_URL"`                               // empty means the provider's public endpoint
	BackendModel     string        `env:"BACKEND_MODEL"`
	HFKey            string        `env:"HF_API_KEY"`
	GeminiKey        string        `env:"GEMINI_API_KEY"`
	OpenAIKey        string        `env:"OPENAI_API_KEY"`
	MaxOutputTokens  int           `env:"MAX_OUTPUT_TOKENS" envDefault:"200"`
	BackendTimeout   time.Duration `env:"BACKEND_TIMEOUT" envDefault:"30s"`
	BackendAttempts  int           `env:"BACKEND_ATTEMPTS" envDefault:"2"`
	BackendRetryBase time.Duration `env:"BACKEND_RETRY_BASE" envDefault:"500ms"`
	BackendRPS       float64       `env:"BACKEND_RPS" envDefault:"0"` // 0 disables rate limiting
	Jurisdiction     string        `env:"JURISDICTION" envDefault:"Bangladesh"`

	// Translation
	SourceLang           string `env:"SOURCE_LANG" envDefault:"en"`
	DisplayLang          string `env:"DISPLAY_LANG" envDefault:"bn"`
	TranslatorProvider   string `env:"TRANSLATOR_PROVIDER" envDefault:"google"` // "google" or "none"
	TranslateKey         string `env:"TRANSLATE_API_KEY"`
	TranslateURL         string `env:"TRANSLATE_URL"`
	TranslateConcurrency int    `env:"TRANSLATE_CONCURRENCY" envDefault:"4"`

	// Cache
	CacheProvider            string `env:"CACHE_PROVIDER" envDefault:"memory"` // "memory", "redis" or "none"
	CacheCapacity            int    `env:"CACHE_CAPACITY" envDefault:"0"`      // 0 means unbounded
	TranslationCacheCapacity int    `env:"TRANSLATION_CACHE_CAPACITY" envDefault:"256"`
	RedisAddr                string `env:"REDIS_ADDR"`
	RedisPassword            string `env:"REDIS_PASSWORD"`

	// Emergency classifier
	EmergencyKeywords     []string `env:"EMERGENCY_KEYWORDS" envSeparator:","`
	EmergencyKeywordsFile string   `env:"EMERGENCY_KEYWORDS_FILE"`

	// Feedback
	FeedbackProvider string `env:"FEEDBACK_PROVIDER" envDefault:"log"` // "log" or "nats"
	QueueURL         string `env:"QUEUE_URL"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// Validate rejects provider names and language tags the pipeline cannot serve.
func (c Config) Validate() error {
	switch c.BackendProvider {
	case "huggingface", "gemini", "openai":
	default:
		return fmt.Errorf("invalid BACKEND_PROVIDER: %s (valid options: huggingface, gemini, openai)", c.BackendProvider)
	}
	switch c.TranslatorProvider {
	case "google", "none":
	default:
		return fmt.Errorf("invalid TRANSLATOR_PROVIDER: %s (valid options: google, none)", c.TranslatorProvider)
	}
	switch c.CacheProvider {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: memory, redis, none)", c.CacheProvider)
	}
	switch c.FeedbackProvider {
	case "log", "nats":
	default:
		return fmt.Errorf("invalid FEEDBACK_PROVIDER: %s (valid options: log, nats)", c.FeedbackProvider)
	}
	if _, err := language.Parse(c.SourceLang); err != nil {
		return fmt.Errorf("invalid SOURCE_LANG %q: %w", c.SourceLang, err)
	}
	if _, err := language.Parse(c.DisplayLang); err != nil {
		return fmt.Errorf("invalid DISPLAY_LANG %q: %w", c.DisplayLang, err)
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive, got %s", c.BackendTimeout)
	}
	return nil
}

// NeedsTranslation reports whether backend output must be translated for display.
func (c Config) NeedsTranslation() bool {
	if c.TranslatorProvider == "none" {
		return false
	}
	src, err1 := language.Parse(c.SourceLang)
	dst, err2 := language.Parse(c.DisplayLang)
	if err1 != nil || err2 != nil {
		return c.SourceLang != c.DisplayLang
	}
	return src != dst
}
