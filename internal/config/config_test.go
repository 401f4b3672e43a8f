package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, kv := range originalEnv {
			if k, v, ok := strings.Cut(kv, "="); ok {
				os.Setenv(k, v)
			}
		}
	}()

	// Clear env to test defaults
	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"BackendProvider", cfg.BackendProvider, "huggingface"},
		{"MaxOutputTokens", cfg.MaxOutputTokens, 200},
		{"BackendTimeout", cfg.BackendTimeout, 30 * time.Second},
		{"BackendAttempts", cfg.BackendAttempts, 2},
		{"Jurisdiction", cfg.Jurisdiction, "Bangladesh"},
		{"SourceLang", cfg.SourceLang, "en"},
		{"DisplayLang", cfg.DisplayLang, "bn"},
		{"TranslatorProvider", cfg.TranslatorProvider, "google"},
		{"CacheProvider", cfg.CacheProvider, "memory"},
		{"CacheCapacity", cfg.CacheCapacity, 0},
		{"FeedbackProvider", cfg.FeedbackProvider, "log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CACHE_CAPACITY", "10")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("EMERGENCY_KEYWORDS", "threat,rape")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.CacheCapacity != 10 {
		t.Errorf("expected cache capacity 10, got %d", cfg.CacheCapacity)
	}
	if cfg.BackendTimeout != 5*time.Second {
		t.Errorf("expected backend timeout 5s, got %s", cfg.BackendTimeout)
	}
	if len(cfg.EmergencyKeywords) != 2 || cfg.EmergencyKeywords[1] != "rape" {
		t.Errorf("unexpected keywords %v", cfg.EmergencyKeywords)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		BackendProvider:    "gemini",
		TranslatorProvider: "google",
		CacheProvider:      "memory",
		FeedbackProvider:   "log",
		SourceLang:         "en",
		DisplayLang:        "bn",
		BackendTimeout:     time.Second,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown backend", func(c *Config) { c.BackendProvider = "claude" }, true},
		{"unknown translator", func(c *Config) { c.TranslatorProvider = "deepl" }, true},
		{"unknown cache", func(c *Config) { c.CacheProvider = "memcached" }, true},
		{"cache disabled", func(c *Config) { c.CacheProvider = "none" }, false},
		{"unknown feedback", func(c *Config) { c.FeedbackProvider = "kafka" }, true},
		{"bad source lang", func(c *Config) { c.SourceLang = "not a tag!" }, true},
		{"bad display lang", func(c *Config) { c.DisplayLang = "" }, true},
		{"zero timeout", func(c *Config) { c.BackendTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNeedsTranslation(t *testing.T) {
	tests := []struct {
		name       string
		provider   string
		src, dst   string
		wantResult bool
	}{
		{"english to bangla", "google", "en", "bn", true},
		{"same language", "google", "en", "en", false},
		{"translator disabled", "none", "en", "bn", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{TranslatorProvider: tt.provider, SourceLang: tt.src, DisplayLang: tt.dst}
			if got := cfg.NeedsTranslation(); got != tt.wantResult {
				t.Errorf("NeedsTranslation() = %v, want %v", got, tt.wantResult)
			}
		})
	}
}
