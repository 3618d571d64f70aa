package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/gopledge/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Recorder receives pricing metrics.
type Recorder interface {
	QuoteComputed(successful bool, charge domain.Money)
	QuoteFailed(reason string)
	CacheLookup(hit bool)
}

type nopRecorder struct{}

func (nopRecorder) QuoteComputed(bool, domain.Money) {}
func (nopRecorder) QuoteFailed(string)               {}
func (nopRecorder) CacheLookup(bool)                 {}
