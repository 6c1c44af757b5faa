package cache

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("cache: not found")

// KV defines the minimal key-value cache contract with TTL semantics.
// A ttl <= 0 stores the value without expiry.
// Implementations must be safe for concurrent use by multiple goroutines.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string, ttl time.Duration) error
}

// Local adapts a Store to KV for in-process callers.
type Local struct {
	Store *Store
}

var _ KV = Local{}

func (l Local) Get(key string) (string, error) {
	v, ok := l.Store.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (l Local) Set(key, value string, ttl time.Duration) error {
	l.Store.Set(key, value, durationTTL(ttl))
	return nil
}

// durationTTL rounds a positive duration up to whole seconds.
func durationTTL(ttl time.Duration) TTL {
	if ttl <= 0 {
		return NoExpiry
	}
	secs := int64(ttl / time.Second)
	if ttl%time.Second != 0 {
		secs++
	}
	return Seconds(secs)
}
