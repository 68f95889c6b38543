package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"paperqa/internal/cache"
	"paperqa/internal/config"
	"paperqa/internal/generate"
	"paperqa/internal/logger"
	"paperqa/internal/model"
	"paperqa/internal/qa"
	"paperqa/internal/queue"
	"paperqa/internal/store"
	"paperqa/internal/tokenizer"
)

// Deps bundles common runtime dependencies for the server and worker.
// Everything here is built once at process start and read-only afterwards;
// request handlers receive it by value instead of reaching for globals.
// Store and Queue are nil when their providers are set to "none", which
// disables persistence and async processing.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Registry *model.Registry
	QA       *qa.Service
	Cache    cache.Cache
	Store    store.Store
	Queue    queue.Queue
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	registry := model.Default(cfg.ContextLimit)
	backend, err := buildBackend(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize inference backend: %w", err)
	}
	gen := generate.New(registry, backend, tokenizer.New(cfg.TokenizerEncoding), log)

	c, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	q, err := buildQueue(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}

	return Deps{
		Config:   cfg,
		Log:      log,
		Registry: registry,
		QA:       qa.New(gen),
		Cache:    c,
		Store:    st,
		Queue:    q,
	}, nil
}

// Async reports whether async processing is available (store and queue configured).
func (d Deps) Async() bool {
	return d.Store != nil && d.Queue != nil
}

func buildBackend(cfg config.Config, log *slog.Logger) (generate.Backend, error) {
	var (
		backend generate.Backend
		err     error
	)
	switch cfg.BackendProvider {
	case "hf":
		backend, err = generate.NewHFBackend(cfg.HFEndpoint, cfg.HFToken)
		if err != nil {
			return nil, err
		}
		log.Info("using HuggingFace-style inference backend", "endpoint", cfg.HFEndpoint)
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when BACKEND_PROVIDER=openai")
		}
		backend, err = generate.NewOpenAIBackend(cfg.OpenAIKey, cfg.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		log.Info("using OpenAI-compatible inference backend")
	default:
		return nil, fmt.Errorf("invalid BACKEND_PROVIDER: %s (valid options: hf, openai)", cfg.BackendProvider)
	}
	if cfg.BreakerEnabled {
		backend = generate.NewBreakerBackend(backend)
	}
	return backend, nil
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		log.Info("using Redis answer cache")
		return c, nil
	case "noop":
		return cache.NewNoopCache(), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: redis, noop)", cfg.CacheProvider)
	}
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.StoreProvider {
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when STORE_PROVIDER=postgres")
		}
		db, err := store.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres request store")
		return db, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid options: postgres, none)", cfg.StoreProvider)
	}
}

func buildQueue(cfg config.Config, log *slog.Logger) (queue.Queue, error) {
	switch cfg.QueueProvider {
	case "nats":
		if cfg.QueueURL == "" {
			return nil, fmt.Errorf("QUEUE_URL is required when QUEUE_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.QueueURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("using NATS queue")
		return queue.NewNATS(log, nc), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("invalid QUEUE_PROVIDER: %s (valid options: nats, none)", cfg.QueueProvider)
	}
}
