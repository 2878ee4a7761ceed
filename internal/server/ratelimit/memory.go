package ratelimit

import (
	"sync"
	"time"
)

// memoryLimiter is an in-process token bucket limiter. Each key holds a
// fixed-size bucket, so state is O(1) per key regardless of request volume.
type memoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  Config

	cleanupT *time.Ticker
	stopCh   chan struct{}
}

// bucket tracks the available tokens for one key. Tokens refill at a
// constant rate of Requests/Window.
type bucket struct {
	tokens     float64
	lastUpdate time.Time
}

// NewMemoryLimiter creates an in-memory token bucket limiter.
func NewMemoryLimiter(cfg Config) Limiter {
	l := &memoryLimiter{
		buckets: make(map[string]*bucket),
		config:  cfg,
		stopCh:  make(chan struct{}),
	}

	// Idle buckets are dropped periodically to bound memory with many
	// distinct client IPs.
	l.cleanupT = time.NewTicker(cfg.Window * 2)
	go l.cleanupLoop()

	return l
}

func (l *memoryLimiter) Allow(key string) bool {
	if !l.config.Enabled {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	capacity := float64(l.config.Requests)
	fillRate := capacity / l.config.Window.Seconds()

	b, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &bucket{
			tokens:     capacity - 1,
			lastUpdate: now,
		}
		return true
	}

	elapsed := now.Sub(b.lastUpdate).Seconds()
	b.tokens = min(capacity, b.tokens+elapsed*fillRate)
	b.lastUpdate = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (l *memoryLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

func (l *memoryLimiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupT.C:
			l.dropIdle()
		case <-l.stopCh:
			l.cleanupT.Stop()
			return
		}
	}
}

func (l *memoryLimiter) dropIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	idleThreshold := l.config.Window * 2

	for key, b := range l.buckets {
		if now.Sub(b.lastUpdate) > idleThreshold {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the cleanup goroutine.
func (l *memoryLimiter) Stop() {
	close(l.stopCh)
}

// Stoppable extends Limiter with a Stop method for shutdown.
type Stoppable interface {
	Limiter
	Stop()
}

var _ Stoppable = (*memoryLimiter)(nil)
