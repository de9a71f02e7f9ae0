package utils

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// RateLimiter is a token-bucket limiter for outbound requests to a single
// source. Tokens refill lazily on each Acquire call; there is no
// background timer. Safe for concurrent use.
type RateLimiter struct {
	mu       sync.Mutex
	rate     float64 // tokens added per `per`
	per      float64 // refill window in seconds
	capacity float64
	tokens   float64
	last     time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewRateLimiter creates a limiter allowing `rate` acquisitions per `per`
// seconds, with burst capacity equal to rate. Returns an error on
// non-positive parameters.
func NewRateLimiter(rate, per float64) (*RateLimiter, error) {
	return NewRateLimiterBurst(rate, per, rate)
}

// NewRateLimiterBurst is NewRateLimiter with an explicit burst capacity.
func NewRateLimiterBurst(rate, per, burst float64) (*RateLimiter, error) {
	if rate <= 0 || per <= 0 {
		return nil, fmt.Errorf("ratelimit: rate and per must be > 0 (rate=%v per=%v)", rate, per)
	}
	if burst <= 0 {
		burst = rate
	}
	return &RateLimiter{
		rate:     rate,
		per:      per,
		capacity: burst,
		tokens:   burst,
		last:     time.Now(),
		now:      time.Now,
		sleep:    time.Sleep,
	}, nil
}

// refill adds elapsed_time × rate/per tokens, capped at capacity.
// Caller must hold mu.
func (r *RateLimiter) refill() {
	now := r.now()
	elapsed := now.Sub(r.last).Seconds()
	if elapsed <= 0 {
		return
	}
	r.tokens = math.Min(r.capacity, r.tokens+elapsed*(r.rate/r.per))
	r.last = now
}

// Acquire blocks until a token is available, then consumes it. Two
// concurrent callers never consume the same token.
func (r *RateLimiter) Acquire() {
	for {
		r.mu.Lock()
		r.refill()
		if r.tokens >= 1.0 {
			r.tokens--
			r.mu.Unlock()
			return
		}
		needed := 1.0 - r.tokens
		perSec := r.rate / r.per
		wait := time.Duration(needed / perSec * float64(time.Second))
		r.mu.Unlock()

		r.sleep(wait)
	}
}

// Tokens reports the currently available token count after a refill.
func (r *RateLimiter) Tokens() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refill()
	return r.tokens
}
