package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/iho/gopledge/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Redis (leave empty to disable the quote cache)
	RedisURL      string        `env:"REDIS_URL"       envDefault:""`
	QuoteCacheTTL time.Duration `env:"QUOTE_CACHE_TTL" envDefault:"10m"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Rate limiting (requests per second per client IP; 0 disables)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Fees Fees `envPrefix:"FEE_"`
}

// Fees configures the pricing constants.
type Fees struct {
	PlatformRate       decimal.Decimal `env:"PLATFORM_RATE"        envDefault:"0.01"`
	ProcessingRate     decimal.Decimal `env:"PROCESSING_RATE"      envDefault:"0.029"`
	ProcessingFixed    decimal.Decimal `env:"PROCESSING_FIXED"     envDefault:"0.30"`
	MinimumPledge      domain.Money    `env:"MINIMUM_PLEDGE"       envDefault:"0.50"`
	MaximumPledge      domain.Money    `env:"MAXIMUM_PLEDGE"       envDefault:"999999.99"`
	MinimumFundingGoal domain.Money    `env:"MINIMUM_FUNDING_GOAL" envDefault:"1"`
	MaximumFundingGoal domain.Money    `env:"MAXIMUM_FUNDING_GOAL" envDefault:"1000000000"`
	MaxReasonLength    int             `env:"MAX_REASON_LENGTH"    envDefault:"26"`
	MaxDeadline        time.Duration   `env:"MAX_DEADLINE"         envDefault:"8760h"`
	RoundUp            bool            `env:"ROUND_UP"             envDefault:"false"`
}

// Schedule converts the fee settings into a domain.FeeSchedule.
func (f Fees) Schedule() domain.FeeSchedule {
	return domain.FeeSchedule{
		PlatformFeeRate:    f.PlatformRate,
		ProcessingFeeRate:  f.ProcessingRate,
		ProcessingFeeFixed: f.ProcessingFixed,
		MinimumPledge:      f.MinimumPledge,
		MaximumPledge:      f.MaximumPledge,
		MinimumFundingGoal: f.MinimumFundingGoal,
		MaximumFundingGoal: f.MaximumFundingGoal,
		MaxReasonLength:    f.MaxReasonLength,
		MaxDeadline:        f.MaxDeadline,
		RoundUp:            f.RoundUp,
	}
}

// Load loads configuration from a .env file, if present, and the environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Fees.Schedule().Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
