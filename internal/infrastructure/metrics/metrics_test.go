package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gopledge/internal/domain"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	require.NotNil(t, m.QuotesComputed)
	require.NotNil(t, m.HTTPRequests)

	m.HTTPRequests.WithLabelValues("GET", "/health", "200").Inc()
	m.RateLimitHits.Inc()

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestRecorder(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.QuoteComputed(true, domain.Cents(134))
	m.QuoteComputed(true, domain.Cents(82))
	m.QuoteComputed(false, domain.Money{})
	m.QuoteFailed("invalid_funding_goal")
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QuotesComputed.WithLabelValues("successful")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotesComputed.WithLabelValues("unsuccessful")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuoteFailures.WithLabelValues("invalid_funding_goal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ChargeAmount))
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	assert.Panics(t, func() { New(registry) })
}
