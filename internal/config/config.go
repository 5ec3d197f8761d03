// Package config reads process configuration from the environment once at
// startup. The resulting Config is passed by pointer and never re-read.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"listingpilot/internal/domain"
	"listingpilot/pkg/log"
)

const (
	ScraperModeHTTP    = "http"
	ScraperModeBrowser = "browser"

	// Unlimited is the tier limit value that disables quota checks.
	Unlimited = -1
)

type Config struct {
	Port      string    `env:"PORT" envDefault:"3000"`
	LogLevel  log.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string    `env:"LOG_FORMAT" envDefault:"json"`

	OpenAIAPIKey      string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string        `env:"OPENAI_BASE_URL"`
	OpenAIModel       string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	LLMMaxRetries     int           `env:"LLM_MAX_RETRIES" envDefault:"2"`
	LLMRetryBaseDelay time.Duration `env:"LLM_RETRY_BASE_DELAY" envDefault:"1s"`
	LLMRateLimitRPS   float64       `env:"LLM_RATE_LIMIT_RPS" envDefault:"2"`
	ValidateResponse  bool          `env:"VALIDATE_RESPONSE" envDefault:"true"`

	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"90s"`
	MaxPayloadBytes int           `env:"MAX_PAYLOAD_BYTES" envDefault:"102400"`

	RulesFile      string `env:"RULES_FILE"`
	ExtractorsFile string `env:"EXTRACTORS_FILE"`

	ScraperMode     string        `env:"SCRAPER_MODE" envDefault:"http"`
	ScraperTimeout  time.Duration `env:"SCRAPER_TIMEOUT" envDefault:"15s"`
	ScrapeRateLimit int           `env:"SCRAPE_RATE_LIMIT" envDefault:"10"`
	ChromePath      string        `env:"CHROME_PATH"`

	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"listingpilot"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	TierLimitFree     int      `env:"TIER_LIMIT_FREE" envDefault:"10"`
	TierLimitPro      int      `env:"TIER_LIMIT_PRO" envDefault:"200"`
	TierLimitBusiness int      `env:"TIER_LIMIT_BUSINESS" envDefault:"-1"`
	AdminEmails       []string `env:"ADMIN_EMAILS" envSeparator:","`

	OTelEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"listingpilot"`
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.LLMMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("LLM_MAX_RETRIES must not be negative, got %d", c.LLMMaxRetries))
	}
	if strings.TrimSpace(c.OpenAIModel) == "" {
		errs = append(errs, errors.New("OPENAI_MODEL must not be empty"))
	}
	if c.ScraperMode != ScraperModeHTTP && c.ScraperMode != ScraperModeBrowser {
		errs = append(errs, fmt.Errorf("SCRAPER_MODE must be %q or %q, got %q", ScraperModeHTTP, ScraperModeBrowser, c.ScraperMode))
	}
	if c.MaxPayloadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_PAYLOAD_BYTES must be positive, got %d", c.MaxPayloadBytes))
	}
	if c.LLMRateLimitRPS <= 0 {
		errs = append(errs, fmt.Errorf("LLM_RATE_LIMIT_RPS must be positive, got %v", c.LLMRateLimitRPS))
	}
	if c.RequestTimeout <= 0 || c.LLMTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT and LLM_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// TierLimit returns the monthly optimization allowance for tier, or
// Unlimited. Unknown tiers get the free allowance.
func (c *Config) TierLimit(tier domain.Tier) int {
	switch tier {
	case domain.TierPro:
		return c.TierLimitPro
	case domain.TierBusiness:
		return c.TierLimitBusiness
	default:
		return c.TierLimitFree
	}
}

// IsAdmin reports whether email is listed in ADMIN_EMAILS, ignoring case.
func (c *Config) IsAdmin(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, a := range c.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(a), email) {
			return true
		}
	}
	return false
}
