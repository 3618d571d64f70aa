package integration

import (
	"net/http"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/gopledge/internal/adapter/http/dto"
	helpers "github.com/iho/gopledge/tests/testutil"
)

func TestConcurrentQuotes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	srv := helpers.NewTestServer(t)

	const workers = 50
	req := map[string]any{"funding_goal": "2500.00", "minimum_pledgers": 30, "current_pledgers": 45}

	var wg sync.WaitGroup
	var mu sync.Mutex
	charges := map[string]int{}
	ids := map[string]struct{}{}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			var resp dto.QuoteResponse
			if code := srv.PostJSON("/api/v1/quotes", req, &resp); code != http.StatusOK {
				t.Errorf("expected 200, got %d", code)
				return
			}

			mu.Lock()
			charges[resp.Breakdown.Charge.String()]++
			ids[resp.ID] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(charges) != 1 {
		t.Fatalf("expected every worker to see the same charge, got %v", charges)
	}
	if len(ids) != workers {
		t.Fatalf("expected %d distinct quote ids, got %d", workers, len(ids))
	}

	hits := testutil.ToFloat64(srv.Metrics.CacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(srv.Metrics.CacheLookups.WithLabelValues("miss"))
	if hits+misses != workers {
		t.Fatalf("expected %d cache lookups, got %v hits and %v misses", workers, hits, misses)
	}
	if misses < 1 {
		t.Fatalf("expected at least one cache miss")
	}
	if len(srv.Redis.Keys()) != 1 {
		t.Fatalf("expected a single cached quote, got %v", srv.Redis.Keys())
	}
}

