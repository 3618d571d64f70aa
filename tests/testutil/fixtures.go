package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/gopledge/internal/adapter/http"
	"github.com/iho/gopledge/internal/adapter/http/handler"
	redisRepo "github.com/iho/gopledge/internal/adapter/repository/redis"
	"github.com/iho/gopledge/internal/domain"
	"github.com/iho/gopledge/internal/infrastructure/idgen"
	"github.com/iho/gopledge/internal/infrastructure/metrics"
	"github.com/iho/gopledge/internal/usecase"
)

// TestServer is a fully wired HTTP API backed by an in-memory redis.
type TestServer struct {
	*httptest.Server

	Redis    *miniredis.Miniredis
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	t        *testing.T
}

// NewTestServer starts a server with the default fee schedule.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	cache := redisRepo.NewCache(client)
	schedule := domain.DefaultFeeSchedule()

	quotes := usecase.NewQuoteUseCase(schedule, idgen.NewULIDGenerator(),
		usecase.WithCache(cache, time.Minute),
		usecase.WithRecorder(m),
	)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		QuoteHandler:    handler.NewQuoteHandler(quotes),
		FeeHandler:      handler.NewFeeHandler(usecase.NewFeeUseCase(schedule)),
		CampaignHandler: handler.NewCampaignHandler(usecase.NewCampaignUseCase(schedule, quotes)),
		HealthHandler:   handler.NewHealthHandler(cache),
		Logger:          zerolog.Nop(),
		Metrics:         m,
		Gatherer:        reg,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &TestServer{Server: srv, Redis: mr, Metrics: m, Registry: reg, t: t}
}

// PostJSON posts body and decodes the response into out when out is non-nil.
func (s *TestServer) PostJSON(path string, body, out any) int {
	s.t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		s.t.Fatalf("failed to encode request: %v", err)
	}

	resp, err := http.Post(s.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		s.t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	s.decode(resp.Body, out)
	return resp.StatusCode
}

// GetJSON issues a GET and decodes the response into out when out is non-nil.
func (s *TestServer) GetJSON(path string, out any) int {
	s.t.Helper()

	resp, err := http.Get(s.URL + path)
	if err != nil {
		s.t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	s.decode(resp.Body, out)
	return resp.StatusCode
}

func (s *TestServer) decode(r io.Reader, out any) {
	s.t.Helper()
	if out == nil {
		return
	}
	if err := json.NewDecoder(r).Decode(out); err != nil {
		s.t.Fatalf("failed to decode response: %v", err)
	}
}
