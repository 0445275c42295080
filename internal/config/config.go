package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config 服务全部可配置参数，均来自环境变量（本地运行可用 .env）
// Config holds every tunable of the service, sourced from environment
// variables (loaded from .env for local runs).
type Config struct {
	Addr        string `default:":8000"`
	Environment string `default:"development"`
	DataDir     string `split_words:"true" default:"data"`

	// Model gateway
	DefaultModel    string `envconfig:"DEFAULT_MODEL" default:"qwen2.5"`
	ModelProvider   string `envconfig:"MODEL_PROVIDER" default:"cli"`
	ModelTimeoutSec int    `envconfig:"MODEL_TIMEOUT_SEC" default:"120"`
	OpenAIBaseURL   string `envconfig:"OPENAI_BASE_URL" default:"http://127.0.0.1:11434/v1"`
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY" default:"ollama"`

	// Tools
	TorProxy string `envconfig:"TOR_PROXY" default:"socks5://127.0.0.1:9050"`

	// Orchestration bounds
	MaxHistory   int `split_words:"true" default:"10"`
	MaxToolDepth int `split_words:"true" default:"5"`

	// Session history backend: memory | redis
	SessionBackend string `split_words:"true" default:"memory"`
	SessionTTL     string `envconfig:"SESSION_TTL" default:"12h"`
	RedisURL       string `envconfig:"REDIS_URL"`
}

// Load processes environment variables into a Config and validates the
// handful of fields that cannot be checked lazily.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment config: %w", err)
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = 10
	}
	if cfg.MaxToolDepth <= 0 {
		cfg.MaxToolDepth = 5
	}
	switch cfg.ModelProvider {
	case "cli", "openai":
	default:
		return Config{}, fmt.Errorf("invalid MODEL_PROVIDER %q (want cli or openai)", cfg.ModelProvider)
	}
	switch cfg.SessionBackend {
	case "memory":
	case "redis":
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("SESSION_BACKEND=redis requires REDIS_URL")
		}
	default:
		return Config{}, fmt.Errorf("invalid SESSION_BACKEND %q (want memory or redis)", cfg.SessionBackend)
	}
	if _, err := time.ParseDuration(cfg.SessionTTL); err != nil {
		return Config{}, fmt.Errorf("invalid SESSION_TTL %q: %w", cfg.SessionTTL, err)
	}
	return cfg, nil
}

// ModelTimeout returns the bounded wait for a single model invocation.
func (c Config) ModelTimeout() time.Duration {
	if c.ModelTimeoutSec <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.ModelTimeoutSec) * time.Second
}

// SessionTTLDuration returns the parsed redis history TTL. Load has already
// validated the string.
func (c Config) SessionTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}
