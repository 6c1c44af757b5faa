package cache

import (
	"sync"
	"time"
)

// Store is an in-memory key-value cache with lazy TTL expiration.
// A single mutex serializes every operation, including the pruning pass
// that Get runs before each lookup. It is safe for concurrent use by
// multiple goroutines.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
	now     func() time.Time
}

type Options struct {
	// Now overrides the clock used for createdAt and staleness checks.
	// Defaults to time.Now.
	Now func() time.Time
}

// New returns an empty Store.
func New(opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{entries: make(map[string]*Entry), now: now}
}

// Set inserts or overwrites key. Value, createdAt and TTL are all replaced.
func (s *Store) Set(key, value string, ttl TTL) {
	s.mu.Lock()
	defer s.mu.Unlock()
	createdAt := s.now().Unix()
	if e, ok := s.entries[key]; ok {
		e.Value = value
		e.CreatedAt = createdAt
		e.TTL = ttl
		return
	}
	s.entries[key] = &Entry{Key: key, Value: value, CreatedAt: createdAt, TTL: ttl}
}

// Get returns the value stored under key if it is present and not stale.
// Every stale entry in the store is removed first, whichever key it has.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(s.now())
	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	return e.Value, true
}

// Len returns the number of entries physically held, stale ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// prune must be called with s.mu held.
func (s *Store) prune(now time.Time) {
	for k, e := range s.entries {
		if IsStale(*e, now) {
			delete(s.entries, k)
		}
	}
}
