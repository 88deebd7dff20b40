package scraper

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync"
	"time"
)

// RateLimiter paces outbound requests to the portal. Each request reserves
// a slot a randomized delay after the previous one, so bursts flatten into
// a polite trickle regardless of caller concurrency.
type RateLimiter struct {
	mu       sync.Mutex
	next     time.Time
	minDelay time.Duration
	maxDelay time.Duration
}

// NewRateLimiter creates a limiter spacing requests between minDelay and
// maxDelay apart. maxDelay below minDelay is treated as minDelay.
func NewRateLimiter(minDelay, maxDelay time.Duration) *RateLimiter {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &RateLimiter{minDelay: minDelay, maxDelay: maxDelay}
}

// Wait blocks until this caller's reserved slot arrives, or the context is
// canceled. The reservation is kept on cancellation; the portal does not
// care why we went quiet.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	now := time.Now()
	wait := r.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	r.next = now.Add(wait + r.randomDelay())
	r.mu.Unlock()

	if wait == 0 {
		return nil
	}
	return Sleep(ctx, wait)
}

func (r *RateLimiter) randomDelay() time.Duration {
	spread := int64(r.maxDelay - r.minDelay)
	if spread <= 0 {
		return r.minDelay
	}
	n, err := rand.Int(rand.Reader, big.NewInt(spread))
	if err != nil {
		return r.minDelay
	}
	return r.minDelay + time.Duration(n.Int64())
}
