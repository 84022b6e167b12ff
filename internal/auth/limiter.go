package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a key may go unused before its bucket is dropped.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// LoginLimiter throttles signin attempts per key. Signin checks both the
// client IP and the submitted email.
type LoginLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewLoginLimiter allows perMinute attempts per key with the given burst.
// A non-positive perMinute disables limiting.
func NewLoginLimiter(perMinute, burst int) *LoginLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &LoginLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    limit,
		burst:    burst,
		idleTTL:  limiterIdleTTL,
		now:      time.Now,
	}
}

// Allow consumes one attempt for key.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	now := l.now()
	l.sweep(now)
	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.seen = now
	l.mu.Unlock()
	return e.lim.AllowN(now, 1)
}

// Len reports how many keys are tracked.
func (l *LoginLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// sweep drops idle keys, at most once per idle TTL. Callers hold mu.
func (l *LoginLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	l.lastSweep = now
	for key, e := range l.limiters {
		if now.Sub(e.seen) >= l.idleTTL {
			delete(l.limiters, key)
		}
	}
}
