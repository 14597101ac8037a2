package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	DefaultServiceName             = "paychain"
	DefaultEnv                     = "dev"
	DefaultLanguage                = "ru"
	DefaultBigMoneyThreshold       = "5000"
	DefaultSuspiciousDaysThreshold = 365
	DefaultDaysSinceLastPayment    = 5
)

// Config holds environment-driven settings for the validation pipeline.
type Config struct {
	ServiceName string
	Env         string

	// Logging
	LogOutput string
	LogFile   string
	LogLevel  string
	LogFormat string

	// Console diagnostics language: "ru" or "en"
	Language string

	// Checks
	BigMoneyThreshold           decimal.Decimal
	SuspiciousDaysThreshold     int
	DefaultDaysSinceLastPayment int // history fallback for senders with no recorded payment
	MonitoringSeed              int64
	StrictValidation            bool

	// Assembly
	EnableSuspiciousStage bool
	ChainFile             string
	Stages                []string // empty means the default assembly

	// Prometheus text exposition written on exit; empty disables it.
	MetricsFile string

	// Cosmetic delay after each diagnostic line; zero disables pacing.
	PacingInterval time.Duration
}

// Load reads environment variables (optionally via .env) into Config.
func Load() (*Config, error) {
	// Ignore error so the app still starts when .env is missing.
	_ = godotenv.Load()
	return LoadFrom(os.Getenv)
}

// LoadFrom builds a Config from the supplied lookup function and applies CHAIN_FILE when set.
func LoadFrom(getenv func(string) string) (*Config, error) {
	e := env{get: getenv}

	threshold, err := e.decimal("BIG_MONEY_THRESHOLD", DefaultBigMoneyThreshold)
	if err != nil {
		return nil, err
	}
	days, err := e.int("SUSPICIOUS_DAYS_THRESHOLD", DefaultSuspiciousDaysThreshold)
	if err != nil {
		return nil, err
	}
	fallbackDays, err := e.int("DEFAULT_DAYS_SINCE_LAST_PAYMENT", DefaultDaysSinceLastPayment)
	if err != nil {
		return nil, err
	}
	pacing, err := e.duration("PACING_INTERVAL", 0)
	if err != nil {
		return nil, err
	}
	seed, err := e.int64("MONITORING_SEED", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServiceName:                 e.str("SERVICE_NAME", DefaultServiceName),
		Env:                         e.str("ENV", DefaultEnv),
		LogOutput:                   e.str("LOG_OUTPUT", "stderr"),
		LogFile:                     e.str("LOG_FILE", ""),
		LogLevel:                    e.str("LOG_LEVEL", "info"),
		LogFormat:                   e.str("LOG_FORMAT", "json"),
		Language:                    strings.ToLower(e.str("LANGUAGE", DefaultLanguage)),
		BigMoneyThreshold:           threshold,
		SuspiciousDaysThreshold:     days,
		DefaultDaysSinceLastPayment: fallbackDays,
		MonitoringSeed:              seed,
		StrictValidation:            e.bool("STRICT_VALIDATION"),
		EnableSuspiciousStage:       e.bool("ENABLE_SUSPICIOUS_STAGE"),
		ChainFile:                   e.str("CHAIN_FILE", ""),
		MetricsFile:                 e.str("METRICS_FILE", ""),
		PacingInterval:              pacing,
	}

	if cfg.ChainFile != "" {
		file, err := LoadChainFile(cfg.ChainFile)
		if err != nil {
			return nil, err
		}
		if err := file.Apply(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no assembly can use.
func (c *Config) Validate() error {
	if c.BigMoneyThreshold.IsNegative() {
		return fmt.Errorf("config: BIG_MONEY_THRESHOLD must be zero or greater, got %s", c.BigMoneyThreshold)
	}
	if c.SuspiciousDaysThreshold <= 0 {
		return fmt.Errorf("config: SUSPICIOUS_DAYS_THRESHOLD must be greater than zero, got %d", c.SuspiciousDaysThreshold)
	}
	if c.DefaultDaysSinceLastPayment < 0 {
		return fmt.Errorf("config: DEFAULT_DAYS_SINCE_LAST_PAYMENT must be zero or greater, got %d", c.DefaultDaysSinceLastPayment)
	}
	if c.PacingInterval < 0 {
		return fmt.Errorf("config: PACING_INTERVAL must be zero or greater, got %s", c.PacingInterval)
	}
	return nil
}

type env struct{ get func(string) string }

func (e env) str(key, def string) string {
	if v := strings.TrimSpace(e.get(key)); v != "" {
		return v
	}
	return def
}

func (e env) bool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(e.get(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func (e env) int(key string, def int) (int, error) {
	v := strings.TrimSpace(e.get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func (e env) int64(key string, def int64) (int64, error) {
	v := strings.TrimSpace(e.get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func (e env) duration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(e.get(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func (e env) decimal(key, def string) (decimal.Decimal, error) {
	v := e.str(key, def)
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
