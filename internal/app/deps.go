package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"golang.org/x/time/rate"

	"legally/internal/advice"
	"legally/internal/backend"
	"legally/internal/cache"
	"legally/internal/config"
	"legally/internal/emergency"
	"legally/internal/feedback"
	"legally/internal/logger"
	"legally/internal/translate"
)

// Deps bundles the runtime dependencies of the advice service.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	Cache     cache.Cache
	Processor *advice.Processor
	Feedback  feedback.Publisher

	closers []func() error
}

// Close releases connections opened by Build.
func (d Deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build loads .env (if present), config, and shared components.
func Build() (Deps, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return Deps{}, err
	}
	return BuildWith(cfg, logger.New(cfg.LogLevel))
}

// LoadConfig reads .env (if present) into the environment and parses config.
func LoadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return config.Load(), nil
}

// BuildWith wires components from an explicit config.
func BuildWith(cfg config.Config, log *slog.Logger) (Deps, error) {
	if err := cfg.Validate(); err != nil {
		return Deps{}, fmt.Errorf("invalid configuration: %w", err)
	}
	deps := Deps{Config: cfg, Log: log}

	c, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	deps.Cache = c
	deps.closers = append(deps.closers, c.Close)

	keywords, err := emergency.Resolve(cfg.EmergencyKeywords, cfg.EmergencyKeywordsFile)
	if err != nil {
		deps.Close()
		return Deps{}, fmt.Errorf("failed to load emergency keywords: %w", err)
	}
	classifier := emergency.New(keywords)
	log.Info("emergency classifier ready", "keywords", len(classifier.Keywords()))

	pub, closePub, err := buildFeedback(cfg, log)
	if err != nil {
		deps.Close()
		return Deps{}, fmt.Errorf("failed to initialize feedback publisher: %w", err)
	}
	deps.Feedback = pub
	if closePub != nil {
		deps.closers = append(deps.closers, closePub)
	}

	deps.Processor = advice.New(buildBackend(cfg, log), buildTranslator(cfg, log), classifier, c, advice.Options{
		Jurisdiction: cfg.Jurisdiction,
		SourceLang:   cfg.SourceLang,
		DisplayLang:  cfg.DisplayLang,
		Translate:    cfg.NeedsTranslation(),
		Timeout:      backend.CallBudget(cfg.BackendAttempts, cfg.BackendTimeout, cfg.BackendRetryBase),
	}, log)
	return deps, nil
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "memory":
		log.Info("using in-memory cache", "capacity", cfg.CacheCapacity)
		return cache.NewMemory(cfg.CacheCapacity), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		c, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheCapacity)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("using Redis cache", "addr", cfg.RedisAddr, "capacity", cfg.CacheCapacity)
		return c, nil
	case "none":
		log.Info("advice caching disabled")
		return cache.NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: memory, redis, none)", cfg.CacheProvider)
	}
}

// buildBackend never fails on a missing key: each request reports it instead.
func buildBackend(cfg config.Config, log *slog.Logger) backend.Client {
	opts := backend.Options{
		Model:           cfg.BackendModel,
		BaseURL:         cfg.BackendURL,
		MaxOutputTokens: cfg.MaxOutputTokens,
		HTTPClient:      &http.Client{},
	}
	var client backend.Client
	switch cfg.BackendProvider {
	case "gemini":
		opts.APIKey = cfg.GeminiKey
		client = backend.NewGemini(opts)
	case "openai":
		opts.APIKey = cfg.OpenAIKey
		client = backend.NewOpenAI(opts)
	default:
		opts.APIKey = cfg.HFKey
		client = backend.NewHuggingFace(opts)
	}
	if opts.APIKey == "" {
		log.Warn("no API key configured for backend; queries will report missing credentials", "provider", client.Name())
	}

	if cfg.BackendRPS > 0 {
		client = backend.WithRateLimit(client, rate.NewLimiter(rate.Limit(cfg.BackendRPS), 1))
	}
	client = backend.WithTimeout(client, cfg.BackendTimeout)
	client = backend.WithRetry(client, cfg.BackendAttempts, cfg.BackendRetryBase, log)
	log.Info("using backend", "provider", client.Name(), "model", cfg.BackendModel, "timeout", cfg.BackendTimeout.String())
	return client
}

func buildTranslator(cfg config.Config, log *slog.Logger) translate.Translator {
	if !cfg.NeedsTranslation() {
		log.Info("translation disabled", "source", cfg.SourceLang, "display", cfg.DisplayLang)
		return nil
	}
	if cfg.TranslateKey == "" {
		log.Warn("no TRANSLATE_API_KEY configured; answers will show the translation error")
	}
	seg := translate.NewGoogle(cfg.TranslateKey, cfg.TranslateURL, &http.Client{Timeout: cfg.BackendTimeout})
	tr := translate.NewSegmented(seg, cfg.TranslateConcurrency)
	log.Info("using Google translator", "source", cfg.SourceLang, "display", cfg.DisplayLang)
	return translate.NewCached(tr, cache.NewMemory(cfg.TranslationCacheCapacity), log)
}

func buildFeedback(cfg config.Config, log *slog.Logger) (feedback.Publisher, func() error, error) {
	switch cfg.FeedbackProvider {
	case "nats":
		if cfg.QueueURL == "" {
			return nil, nil, fmt.Errorf("QUEUE_URL is required when FEEDBACK_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.QueueURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("publishing feedback to NATS", "subject", feedback.Subject)
		return feedback.NewNATS(log, nc), func() error { return nc.Drain() }, nil
	default:
		log.Info("feedback will be logged only")
		return feedback.NewLogPublisher(log), nil, nil
	}
}
