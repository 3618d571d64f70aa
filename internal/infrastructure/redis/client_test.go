package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func fastOptions() Options {
	opts := DefaultOptions()
	opts.MaxRetries = 2
	opts.InitialInterval = time.Millisecond
	opts.MaxInterval = 5 * time.Millisecond
	return opts
}

func TestNewClientSuccess(t *testing.T) {
	s := miniredis.RunT(t)

	ctx := context.Background()
	client, err := NewClient(ctx, fmt.Sprintf("redis://%s", s.Addr()), fastOptions())
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "://bad-url", fastOptions())
	if err == nil {
		t.Fatalf("expected error for invalid URL")
	}
}

func TestNewClientPingFailure(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close() // close before attempting to connect

	_, err := NewClient(context.Background(), url, fastOptions())
	if err == nil {
		t.Fatalf("expected ping error when server is down")
	}
}

func TestNewClientRespectsCancelledContext(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := fastOptions()
	opts.MaxRetries = 100
	opts.InitialInterval = time.Second

	start := time.Now()
	if _, err := NewClient(ctx, url, opts); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("expected cancelled context to stop retries promptly")
	}
}
