package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

const defaultRetryAfter = time.Second

// rateLimitState tracks the last quota report from the api.
//
// Remaining quota and reset time are read and written together under one
// lock, so concurrent calls never observe a torn pair. One instance is
// shared by every call a Client makes.
type rateLimitState struct {
	mu        sync.Mutex
	known     bool
	remaining int
	reset     time.Time
}

// update consumes rate limit headers from a response.
// Responses without rate limit headers leave the state untouched.
func (s *rateLimitState) update(h http.Header, now time.Time) {
	remaining, ok := intHeader(h, "X-RateLimit-Remaining")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.known = true
	s.remaining = remaining
	if ts, ok := intHeader(h, "X-RateLimit-Reset"); ok {
		s.reset = time.Unix(int64(ts), 0)
	}
}

// waitTime tells how long a caller should wait before issuing a new request.
// Returns 0 when the quota is not known to be exhausted.
func (s *rateLimitState) waitTime(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.known || s.remaining > 0 {
		return 0
	}
	if s.reset.After(now) {
		return s.reset.Sub(now)
	}

	return 0
}

// retryAfter reads the mandatory wait from a rate limited response.
// Reports false when the response carries no rate limit information at all.
func retryAfter(h http.Header, now time.Time) (time.Duration, bool) {
	if secs, ok := intHeader(h, "Retry-After"); ok {
		return time.Duration(secs) * time.Second, true
	}

	remaining, ok := intHeader(h, "X-RateLimit-Remaining")
	if !ok || remaining > 0 {
		return 0, false
	}
	if ts, ok := intHeader(h, "X-RateLimit-Reset"); ok {
		if d := time.Unix(int64(ts), 0).Sub(now); d > 0 {
			return d, true
		}
	}

	return defaultRetryAfter, true
}

func intHeader(h http.Header, name string) (int, bool) {
	s := h.Get(name)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return v, true
}
