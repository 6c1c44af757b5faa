package cache

import (
	"strconv"
	"time"
)

// TTL is either "no expiry" or a non-negative number of seconds.
// The zero value is NoExpiry.
type TTL struct {
	seconds int64
	finite  bool
}

// NoExpiry marks an entry that never becomes stale.
var NoExpiry = TTL{}

// Seconds returns a finite TTL. Negative values are clamped to 0.
func Seconds(n int64) TTL {
	if n < 0 {
		n = 0
	}
	return TTL{seconds: n, finite: true}
}

// Finite reports whether the TTL expires at all.
func (t TTL) Finite() bool { return t.finite }

// Seconds returns the TTL length; it is 0 for NoExpiry.
func (t TTL) Seconds() int64 { return t.seconds }

func (t TTL) String() string {
	if !t.finite {
		return "none"
	}
	return strconv.FormatInt(t.seconds, 10) + "s"
}

// Entry is one stored key-value pair. CreatedAt is a Unix timestamp in
// seconds, refreshed on every Set of the key.
type Entry struct {
	Key       string
	Value     string
	CreatedAt int64
	TTL       TTL
}

// IsStale reports whether e has outlived its TTL at now. The comparison is
// strict, so a TTL of 0 is still live during the second it was set in.
func IsStale(e Entry, now time.Time) bool {
	return e.TTL.finite && now.Unix()-e.CreatedAt > e.TTL.seconds
}
