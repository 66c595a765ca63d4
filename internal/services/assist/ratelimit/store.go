// Package ratelimit implements a per-client sliding window admission check
package ratelimit

import (
	"sync"
	"time"
)

// Entry is one admitted request inside a client's window.
// Token identifies the admission so it can be removed precisely later
type Entry struct {
	At    time.Time
	Token string
}

// Store is the injectable bucket store behind the limiter. Implementations
// must make Mutate an atomic read-modify-write per client key so concurrent
// checks for the same client never interleave
type Store interface {
	// Mutate applies fn to the client's entries and stores the result.
	// A nil/empty result deletes the bucket
	Mutate(clientID string, fn func(entries []Entry) []Entry)
	// Sweep drops entries at or before cutoff and deletes emptied buckets,
	// returning the number of buckets removed
	Sweep(cutoff time.Time) int
	// Buckets reports the number of live client buckets
	Buckets() int
}

// MemStore is the in-process Store used in production.
// A single mutex is enough here: buckets are tiny and mutations are short
type MemStore struct {
	mu      sync.Mutex
	buckets map[string][]Entry
}

// NewMemStore constructs an empty MemStore
func NewMemStore() *MemStore {
	return &MemStore{buckets: make(map[string][]Entry)}
}

// Mutate applies fn under the store lock
func (s *MemStore) Mutate(clientID string, fn func(entries []Entry) []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := fn(s.buckets[clientID])
	if len(out) == 0 {
		delete(s.buckets, clientID)
		return
	}
	s.buckets[clientID] = out
}

// Sweep prunes expired entries and deletes emptied buckets
func (s *MemStore) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entries := range s.buckets {
		kept := entries[:0]
		for _, e := range entries {
			if e.At.After(cutoff) {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(s.buckets, id)
			removed++
			continue
		}
		s.buckets[id] = kept
	}
	return removed
}

// Buckets reports the number of live client buckets
func (s *MemStore) Buckets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}
