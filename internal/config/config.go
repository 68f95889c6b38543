package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration read from the environment.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// Admission control for /process
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"5"` // sustained requests per second
	RateBurst int     `env:"RATE_BURST" envDefault:"10"`

	// Inference backend
	BackendProvider string `env:"BACKEND_PROVIDER" envDefault:"hf"` // "hf" (HuggingFace-style inference server) or "openai" (OpenAI-compatible server)
	HFEndpoint      string `env:"HF_ENDPOINT" envDefault:"https://api-inference.huggingface.co"`
	HFToken         string `env:"HF_TOKEN"`
	OpenAIKey       string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL"`
	BreakerEnabled  bool   `env:"BREAKER_ENABLED" envDefault:"true"`

	// Generation bounds in token units; MinLength must stay below MaxLength.
	MaxLength         int    `env:"MAX_LENGTH" envDefault:"1500"`
	MinLength         int    `env:"MIN_LENGTH" envDefault:"700"`
	ContextLimit      int    `env:"CONTEXT_LIMIT" envDefault:"1024"`
	TokenizerEncoding string `env:"TOKENIZER_ENCODING" envDefault:"gpt2"`

	// Store (request history; "none" disables persistence and async processing)
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"none"` // "postgres" or "none"
	DBURL         string `env:"DB_URL"`

	// Queue (async processing; "none" disables it)
	QueueProvider string `env:"QUEUE_PROVIDER" envDefault:"none"` // "nats" or "none"
	QueueURL      string `env:"QUEUE_URL"`

	// Cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"noop"` // "redis" or "noop"
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"3600"` // seconds
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
