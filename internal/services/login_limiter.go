package services

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Idle usernames are evicted so the limiter map stays bounded over the
// process lifetime. An evicted username starts over with a fresh burst,
// which is harmless at this horizon.
const (
	limiterIdleAfter     = 30 * time.Minute
	limiterPruneInterval = time.Minute
)

type loginLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter throttles credential checks per username so a stolen
// username cannot be brute-forced through the login endpoint.
type LoginRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*loginLimiterEntry
	rate      rate.Limit
	burst     int
	lastPrune time.Time
}

// NewLoginRateLimiter allows ratePerMinute attempts per username with the
// given burst.
func NewLoginRateLimiter(ratePerMinute, burst int) *LoginRateLimiter {
	return &LoginRateLimiter{
		limiters:  make(map[string]*loginLimiterEntry),
		rate:      rate.Limit(float64(ratePerMinute) / 60.0),
		burst:     burst,
		lastPrune: time.Now(),
	}
}

// Allow reports whether another login attempt for the username may proceed.
func (rl *LoginRateLimiter) Allow(username string) bool {
	now := time.Now()

	rl.mu.Lock()
	if now.Sub(rl.lastPrune) >= limiterPruneInterval {
		rl.pruneLocked(now)
	}

	entry, ok := rl.limiters[username]
	if !ok {
		entry = &loginLimiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[username] = entry
	}
	entry.lastSeen = now
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.Allow()
}

// pruneLocked drops usernames idle longer than limiterIdleAfter. Callers must
// hold mu.
func (rl *LoginRateLimiter) pruneLocked(now time.Time) {
	for username, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) >= limiterIdleAfter {
			delete(rl.limiters, username)
		}
	}
	rl.lastPrune = now
}

// Reset clears all tracked usernames.
func (rl *LoginRateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.limiters = make(map[string]*loginLimiterEntry)
}
