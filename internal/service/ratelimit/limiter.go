package ratelimit

import (
	"sync"
	"time"
)

// staleAfter is how long an idle client's bucket is kept before pruning.
const staleAfter = 10 * time.Minute

type bucket struct {
	tokens float64
	last   time.Time
}

// Limiter is a per-client token bucket. Buckets are created on first use and
// pruned once idle, so the map stays bounded by the active client set.
type Limiter struct {
	capacity  float64
	refillPer float64 // tokens per second

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastPrune time.Time
}

func New(capacity, refillPerSec float64) *Limiter {
	if capacity < 1 {
		capacity = 1
	}
	if refillPerSec <= 0 {
		refillPerSec = 1
	}
	return &Limiter{
		capacity:  capacity,
		refillPer: refillPerSec,
		buckets:   make(map[string]*bucket),
		lastPrune: time.Now(),
	}
}

// Allow consumes one token for key, reporting whether the request may
// proceed.
func (l *Limiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPrune) > staleAfter {
		l.prune(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, last: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * l.refillPer
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// prune must be called with mu held.
func (l *Limiter) prune(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.last) > staleAfter {
			delete(l.buckets, key)
		}
	}
	l.lastPrune = now
}
