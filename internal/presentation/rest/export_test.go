package rest

import "time"

// SetClock replaces the limiter clock.
func (l *TenantRateLimiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Len returns the number of live limiters.
func (l *TenantRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
