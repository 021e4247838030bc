package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWithRetry(t *testing.T) {
	logger := zap.NewNop()
	config := RetryConfig{
		MaxRetries:        2,
		InitialDelay:      time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), logger, config, func() error {
			calls++
			if calls < 3 {
				return errors.New("temporary")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("returns last error", func(t *testing.T) {
		sentinel := errors.New("permanent")
		calls := 0
		err := WithRetry(context.Background(), logger, config, func() error {
			calls++
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped sentinel, got %v", err)
		}
		if calls != config.MaxRetries+1 {
			t.Errorf("expected %d calls, got %d", config.MaxRetries+1, calls)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := WithRetry(ctx, logger, config, func() error {
			t.Fatal("function must not be called")
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestBackoff(t *testing.T) {
	config := RetryConfig{InitialDelay: time.Second, MaxDelay: 3 * time.Second, BackoffMultiplier: 2}

	expected := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second}
	for attempt, want := range expected {
		if got := backoff(config, attempt); got != want {
			t.Errorf("attempt %d: expected %v, got %v", attempt, want, got)
		}
	}
}
