package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/gopledge/internal/adapter/http"
	"github.com/iho/gopledge/internal/adapter/http/handler"
	"github.com/iho/gopledge/internal/adapter/http/middleware"
	redisRepo "github.com/iho/gopledge/internal/adapter/repository/redis"
	"github.com/iho/gopledge/internal/infrastructure/config"
	"github.com/iho/gopledge/internal/infrastructure/idgen"
	"github.com/iho/gopledge/internal/infrastructure/logger"
	"github.com/iho/gopledge/internal/infrastructure/metrics"
	"github.com/iho/gopledge/internal/infrastructure/redis"
	"github.com/iho/gopledge/internal/usecase"
)

const limiterCleanupInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// app is the wired service.
type app struct {
	handler     http.Handler
	rateLimiter *middleware.RateLimiter
	redisClient *goredis.Client
}

func (a *app) Close() {
	if a.redisClient != nil {
		a.redisClient.Close()
	}
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg *prometheus.Registry) (*app, error) {
	a := &app{}
	m := metrics.New(reg)
	schedule := cfg.Fees.Schedule()

	quoteOpts := []usecase.QuoteOption{
		usecase.WithRecorder(m),
		usecase.WithLogger(log),
	}

	var health *handler.HealthHandler
	if cfg.RedisURL != "" {
		redisOpts := redis.DefaultOptions()
		redisOpts.Logger = log
		client, err := redis.NewClient(ctx, cfg.RedisURL, redisOpts)
		if err != nil {
			return nil, err
		}
		a.redisClient = client

		cache := redisRepo.NewCache(client)
		quoteOpts = append(quoteOpts, usecase.WithCache(cache, cfg.QuoteCacheTTL))
		health = handler.NewHealthHandler(cache)
		log.Info().Msg("connected to redis, quote cache enabled")
	} else {
		health = handler.NewHealthHandler(nil)
		log.Info().Msg("REDIS_URL not set, quote cache disabled")
	}

	quotes := usecase.NewQuoteUseCase(schedule, idgen.NewULIDGenerator(), quoteOpts...)
	campaigns := usecase.NewCampaignUseCase(schedule, quotes)
	fees := usecase.NewFeeUseCase(schedule)

	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		a.rateLimiter.OnLimited = m.RateLimitHits.Inc
	}

	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		QuoteHandler:    handler.NewQuoteHandler(quotes),
		FeeHandler:      handler.NewFeeHandler(fees),
		CampaignHandler: handler.NewCampaignHandler(campaigns),
		HealthHandler:   health,
		Logger:          log,
		Metrics:         m,
		Gatherer:        reg,
		RateLimiter:     a.rateLimiter,
	})

	return a, nil
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := newApp(ctx, cfg, log, reg)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.rateLimiter != nil {
		go func() {
			ticker := time.NewTicker(limiterCleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if n := a.rateLimiter.CleanupLimiters(time.Hour); n > 0 {
						log.Debug().Int("removed", n).Msg("rate limiter cleanup")
					}
				}
			}
		}()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
