package scraper

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiterFirstRequestImmediate(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(time.Second, 2*time.Second)

	start := time.Now()
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait took %v, want immediate", elapsed)
	}
}

func TestRateLimiterSpacesRequests(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(50*time.Millisecond, 60*time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("three requests took %v, want at least two min delays", elapsed)
	}
}

func TestRateLimiterMaxBelowMin(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(100*time.Millisecond, 10*time.Millisecond)
	if rl.maxDelay != rl.minDelay {
		t.Errorf("maxDelay = %v, want clamped to minDelay %v", rl.maxDelay, rl.minDelay)
	}
}

func TestRateLimiterContextCancel(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(time.Hour, time.Hour)

	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait() = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("second Wait() = %v, want deadline exceeded", err)
	}
}

func TestRandomDelayWithinBounds(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(50*time.Millisecond, 150*time.Millisecond)
	for i := 0; i < 50; i++ {
		d := rl.randomDelay()
		if d < 50*time.Millisecond || d >= 150*time.Millisecond {
			t.Fatalf("randomDelay() = %v, want in [50ms, 150ms)", d)
		}
	}
}
