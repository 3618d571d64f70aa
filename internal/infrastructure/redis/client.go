package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Options tune how NewClient waits for Redis to come up.
type Options struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Logger          zerolog.Logger
}

// DefaultOptions retries the initial ping a few times over a couple of seconds.
func DefaultOptions() Options {
	return Options{
		MaxRetries:      5,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     1 * time.Second,
		Logger:          zerolog.Nop(),
	}
}

// NewClient creates a new Redis client and waits until it answers a ping.
func NewClient(ctx context.Context, redisURL string, opts Options) (*redis.Client, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(redisOpts)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.InitialInterval
	b.MaxInterval = opts.MaxInterval

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		if err := client.Ping(ctx).Err(); err != nil {
			opts.Logger.Warn().Err(err).Int("attempt", attempt).Msg("redis not ready, retrying")
			return err
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(b, opts.MaxRetries), ctx))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
