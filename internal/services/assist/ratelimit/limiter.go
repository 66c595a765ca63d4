package ratelimit

import (
	"time"

	"codeassist/internal/services/assist/domain"

	"github.com/google/uuid"
)

// Config sizes the sliding window
type Config struct {
	// MaxRequests admitted inside any trailing Window. Required > 0
	MaxRequests int
	// Window width. Required > 0
	Window time.Duration
}

// Limiter implements domain.LimiterPort over an injectable Store
type Limiter struct {
	store Store
	cfg   Config

	// seams for deterministic tests
	now      func() time.Time
	newToken func() string
}

// Option customizes a Limiter
type Option func(*Limiter)

// WithClock swaps the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithTokenSource swaps the admission token source, for tests
func WithTokenSource(fn func() string) Option {
	return func(l *Limiter) { l.newToken = fn }
}

// New constructs a Limiter over store
func New(store Store, cfg Config, opts ...Option) *Limiter {
	if store == nil {
		panic("ratelimit.Limiter requires a non-nil Store")
	}
	if cfg.MaxRequests <= 0 || cfg.Window <= 0 {
		panic("ratelimit.Limiter requires positive MaxRequests and Window")
	}
	l := &Limiter{store: store, cfg: cfg, now: time.Now, newToken: uuid.NewString}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Check prunes the client's window and either admits the request, appending a
// token-tagged timestamp, or denies it with a reset estimate.
// Invariant: an allowed decision never leaves more than MaxRequests entries
// inside the trailing window
func (l *Limiter) Check(clientID string) domain.RateDecision {
	var dec domain.RateDecision
	now := l.now()
	cutoff := now.Add(-l.cfg.Window)

	l.store.Mutate(clientID, func(entries []Entry) []Entry {
		kept := make([]Entry, 0, len(entries)+1)
		for _, e := range entries {
			if e.At.After(cutoff) {
				kept = append(kept, e)
			}
		}

		if len(kept) >= l.cfg.MaxRequests {
			reset := kept[0].At.Add(l.cfg.Window).Sub(now).Milliseconds()
			if reset < 0 {
				reset = 0
			}
			dec = domain.RateDecision{Allowed: false, Remaining: 0, ResetMillis: reset}
			return kept
		}

		tok := l.newToken()
		kept = append(kept, Entry{At: now, Token: tok})
		dec = domain.RateDecision{
			Allowed:   true,
			Remaining: l.cfg.MaxRequests - len(kept),
			Token:     tok,
		}
		return kept
	})

	return dec
}

// RecordSuccess removes the admission identified by token so successful calls
// stop counting against the window. Removal is by token, never by position:
// concurrent requests append entries in unpredictable order and a positional
// removal could evict an unrelated admission
func (l *Limiter) RecordSuccess(clientID, token string) {
	if token == "" {
		return
	}
	l.store.Mutate(clientID, func(entries []Entry) []Entry {
		for i, e := range entries {
			if e.Token == token {
				return append(entries[:i], entries[i+1:]...)
			}
		}
		return entries
	})
}

// Window exposes the configured window width (the sweeper ticks at this rate)
func (l *Limiter) Window() time.Duration { return l.cfg.Window }
