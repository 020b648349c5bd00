package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config contains all runtime settings for the legal assistant service.
type Config struct {
	BindAddr         string        `env:"APP_BIND_ADDR" envDefault:":8080"`
	ShutdownTimeout  time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	MetricsNamespace string        `env:"APP_METRICS_NAMESPACE" envDefault:"lexassist"`
	LogLevel         string        `env:"APP_LOG_LEVEL" envDefault:"info"`
	AllowAnyOrigin   bool          `env:"APP_ALLOW_ANY_ORIGIN" envDefault:"false"`
	DefaultUserID    string        `env:"APP_DEFAULT_USER_ID" envDefault:"anonymous"`

	InferenceMode        string        `env:"INFERENCE_MODE" envDefault:"auto"`
	InferenceURL         string        `env:"INFERENCE_URL"`
	InferenceAPIToken    string        `env:"INFERENCE_API_TOKEN"`
	InferenceTimeout     time.Duration `env:"INFERENCE_TIMEOUT" envDefault:"5s"`
	InferenceMaxLength   int           `env:"INFERENCE_MAX_LENGTH" envDefault:"200"`
	InferenceTemperature float64       `env:"INFERENCE_TEMPERATURE" envDefault:"0.7"`
	InferenceDoSample    bool          `env:"INFERENCE_DO_SAMPLE" envDefault:"true"`

	DatabaseURL            string        `env:"DATABASE_URL"`
	HistoryIdleTTL         time.Duration `env:"HISTORY_IDLE_TTL" envDefault:"24h"`
	HistoryJanitorInterval time.Duration `env:"HISTORY_JANITOR_INTERVAL" envDefault:"1m"`
	HistoryRedactPII       bool          `env:"HISTORY_REDACT_PII" envDefault:"true"`
	HistoryRecordRemote    bool          `env:"HISTORY_RECORD_REMOTE" envDefault:"false"`
}

// maxInferenceTimeout keeps a slow upstream from stalling a request indefinitely.
const maxInferenceTimeout = 30 * time.Second

// Load reads an optional .env file, then environment variables, and validates the result.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.InferenceMode = strings.ToLower(strings.TrimSpace(cfg.InferenceMode))
	cfg.InferenceURL = strings.TrimSpace(cfg.InferenceURL)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.InferenceMode {
	case "auto", "http", "off":
	default:
		return fmt.Errorf("INFERENCE_MODE must be one of auto|http|off, got %q", c.InferenceMode)
	}
	if c.InferenceMode == "http" && c.InferenceURL == "" {
		return fmt.Errorf("INFERENCE_URL is required when INFERENCE_MODE=http")
	}
	if c.InferenceTimeout <= 0 || c.InferenceTimeout > maxInferenceTimeout {
		return fmt.Errorf("INFERENCE_TIMEOUT must be in (0, %s]", maxInferenceTimeout)
	}
	if c.InferenceMaxLength <= 0 {
		return fmt.Errorf("INFERENCE_MAX_LENGTH must be positive")
	}
	if c.InferenceTemperature < 0 || c.InferenceTemperature > 2 {
		return fmt.Errorf("INFERENCE_TEMPERATURE must be within [0, 2]")
	}
	if c.HistoryJanitorInterval < time.Second {
		return fmt.Errorf("HISTORY_JANITOR_INTERVAL must be at least 1s")
	}
	if c.HistoryIdleTTL < 0 {
		return fmt.Errorf("HISTORY_IDLE_TTL must be >= 0")
	}
	if strings.TrimSpace(c.DefaultUserID) == "" {
		return fmt.Errorf("APP_DEFAULT_USER_ID must not be blank")
	}
	return nil
}
