package auth

import "time"

// SetNow overrides the clock for expiry tests.
func (m *JWTManager) SetNow(now func() time.Time) { m.now = now }

// SetNow overrides the limiter clock.
func (l *LoginLimiter) SetNow(now func() time.Time) { l.now = now }
