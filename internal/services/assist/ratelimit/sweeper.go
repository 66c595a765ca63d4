package ratelimit

import (
	"sync"
	"time"

	"codeassist/internal/platform/logger"
)

// Sweeper periodically drops expired entries and empty buckets so memory stays
// bounded regardless of how many distinct clients have been seen.
// It is an explicit start/stop task tied to service lifecycle, never an
// implicit always-running timer
type Sweeper struct {
	store    Store
	interval time.Duration
	log      *logger.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewSweeper constructs a Sweeper ticking every interval (the window width)
func NewSweeper(store Store, interval time.Duration) *Sweeper {
	if store == nil {
		panic("ratelimit.Sweeper requires a non-nil Store")
	}
	if interval <= 0 {
		panic("ratelimit.Sweeper requires a positive interval")
	}
	return &Sweeper{store: store, interval: interval, log: logger.Named("ratelimit")}
}

// Start launches the background sweep loop. Calling Start twice is a no-op
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)
		t := time.NewTicker(s.interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				s.SweepOnce(time.Now())
			}
		}
	}(s.stop, s.done)
}

// Stop halts the loop and waits for it to exit. Safe to call when not started
func (s *Sweeper) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// SweepOnce runs a single sweep with the given time, used by the loop and by
// tests that need deterministic triggering
func (s *Sweeper) SweepOnce(now time.Time) int {
	removed := s.store.Sweep(now.Add(-s.interval))
	if removed > 0 {
		s.log.Debug().Int("buckets_removed", removed).Msg("sweep done")
	}
	return removed
}
