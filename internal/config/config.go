package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const DefaultHFModelURL = "https://api-inference.huggingface.co/models/facebook/bart-large-mnli"

type Config struct {
	APIPort  string `validate:"required,numeric"`
	LogLevel string `validate:"omitempty,oneof=debug info warn warning error"`

	StaticDir           string `validate:"required"`
	ClassifierRulesPath string
	CORSAllowedOrigins  string

	HFToken          string
	HFModelURL       string `validate:"required,url"`
	HFTimeoutSeconds int    `validate:"gt=0"`

	HFBreakerEnabled            bool
	HFBreakerMinRequests        int     `validate:"gte=0"`
	HFBreakerFailureRatio       float64 `validate:"gte=0,lte=1"`
	HFBreakerOpenTimeoutSeconds int     `validate:"gte=0"`

	APIRateLimitRPS       float64 `validate:"gte=0"`
	APIRateLimitBurst     int     `validate:"gte=0"`
	APIMaxInFlight        int     `validate:"gte=0"`
	APIBackpressureWaitMS int     `validate:"gte=0"`
}

// LoadDotEnv loads variables from path (default ".env") without overriding the
// process environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		StaticDir:           mustEnv("STATIC_DIR", "./static"),
		ClassifierRulesPath: mustEnv("CLASSIFIER_RULES_PATH", ""),
		CORSAllowedOrigins:  mustEnv("CORS_ALLOWED_ORIGINS", "*"),

		HFToken:          mustEnv("HF_TOKEN", ""),
		HFModelURL:       mustEnv("HF_MODEL_URL", DefaultHFModelURL),
		HFTimeoutSeconds: mustEnvInt("HF_TIMEOUT_SECONDS", 60),

		HFBreakerEnabled:            mustEnvBool("HF_BREAKER_ENABLED", true),
		HFBreakerMinRequests:        mustEnvInt("HF_BREAKER_MIN_REQUESTS", 5),
		HFBreakerFailureRatio:       mustEnvFloat("HF_BREAKER_FAILURE_RATIO", 0.6),
		HFBreakerOpenTimeoutSeconds: mustEnvInt("HF_BREAKER_OPEN_TIMEOUT_SECONDS", 30),

		APIRateLimitRPS:       mustEnvFloat("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst:     mustEnvInt("API_RATE_LIMIT_BURST", 0),
		APIMaxInFlight:        mustEnvInt("API_MAX_INFLIGHT", 0),
		APIBackpressureWaitMS: mustEnvInt("API_BACKPRESSURE_WAIT_MS", 250),
	}
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) HFTimeout() time.Duration {
	return time.Duration(c.HFTimeoutSeconds) * time.Second
}

func (c Config) HFBreakerOpenTimeout() time.Duration {
	return time.Duration(c.HFBreakerOpenTimeoutSeconds) * time.Second
}

func (c Config) APIBackpressureWait() time.Duration {
	return time.Duration(c.APIBackpressureWaitMS) * time.Millisecond
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
