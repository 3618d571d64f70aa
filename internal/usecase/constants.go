package usecase

import "time"

const (
	// DefaultQuoteCacheTTL is how long a computed quote stays cached.
	DefaultQuoteCacheTTL = 10 * time.Minute

	quoteCachePrefix = "quote:v1:"
)
