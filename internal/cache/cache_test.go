package cache

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(1_700_000_000, 0)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clk := newFakeClock()
	return New(Options{Now: clk.Now}), clk
}

func TestSetGetRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	for _, kv := range [][2]string{{"a", "1"}, {"key with space", "value with space"}, {"k", ""}} {
		s.Set(kv[0], kv[1], NoExpiry)
		got, ok := s.Get(kv[0])
		if !ok || got != kv[1] {
			t.Fatalf("Get(%q) = %q, %v; want %q, true", kv[0], got, ok, kv[1])
		}
	}
}

func TestGetMissing(t *testing.T) {
	s, _ := newTestStore(t)
	if v, ok := s.Get("missing"); ok || v != "" {
		t.Fatalf("Get(missing) = %q, %v", v, ok)
	}
}

func TestOverwrite(t *testing.T) {
	s, _ := newTestStore(t)
	s.Set("k", "v1", NoExpiry)
	s.Set("k", "v2", NoExpiry)
	if got, _ := s.Get("k"); got != "v2" {
		t.Fatalf("Get(k) = %q, want v2", got)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestOverwriteReplacesTTLAndCreatedAt(t *testing.T) {
	s, clk := newTestStore(t)
	s.Set("k", "v1", Seconds(1))
	s.Set("k", "v2", NoExpiry)
	clk.Advance(time.Hour)
	if got, ok := s.Get("k"); !ok || got != "v2" {
		t.Fatalf("Get(k) = %q, %v; want v2 without expiry", got, ok)
	}

	s.Set("t", "old", Seconds(2))
	clk.Advance(2 * time.Second)
	s.Set("t", "new", Seconds(2))
	clk.Advance(2 * time.Second)
	if got, ok := s.Get("t"); !ok || got != "new" {
		t.Fatalf("Get(t) = %q, %v; re-set must restart the TTL", got, ok)
	}
}

func TestExpiryBoundary(t *testing.T) {
	s, clk := newTestStore(t)
	s.Set("k", "v", Seconds(1))

	clk.Advance(time.Second)
	if got, ok := s.Get("k"); !ok || got != "v" {
		t.Fatalf("at createdAt+1: Get = %q, %v; want v, true", got, ok)
	}

	clk.Advance(time.Second)
	if _, ok := s.Get("k"); ok {
		t.Fatal("after createdAt+1: key should be absent")
	}
}

func TestZeroTTLLivesForItsSecond(t *testing.T) {
	s, clk := newTestStore(t)
	s.Set("k", "v", Seconds(0))
	if _, ok := s.Get("k"); !ok {
		t.Fatal("TTL 0 should not be stale at creation")
	}
	clk.Advance(time.Second)
	if _, ok := s.Get("k"); ok {
		t.Fatal("TTL 0 should be stale one second later")
	}
}

func TestGetPrunesStoreWide(t *testing.T) {
	s, clk := newTestStore(t)
	s.Set("a", "1", Seconds(1))
	s.Set("b", "2", NoExpiry)
	s.Set("c", "3", Seconds(100))

	clk.Advance(5 * time.Second)
	if s.Len() != 3 {
		t.Fatalf("stale entries must stay until a Get: Len() = %d", s.Len())
	}
	// Set never prunes.
	s.Set("d", "4", NoExpiry)
	if s.Len() != 4 {
		t.Fatalf("Set must not prune: Len() = %d", s.Len())
	}

	if got, ok := s.Get("b"); !ok || got != "2" {
		t.Fatalf("Get(b) = %q, %v", got, ok)
	}
	if s.Len() != 3 {
		t.Fatalf("Get on an unrelated key must prune a: Len() = %d, want 3", s.Len())
	}
	if _, ok := s.Get("a"); ok {
		t.Fatal("a should be absent after expiry")
	}
	if _, ok := s.Get("c"); !ok {
		t.Fatal("c should still be live")
	}
}

func TestConcurrentDistinctKeys(t *testing.T) {
	s := New(Options{})
	const workers, perWorker = 16, 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				k := "k:" + strconv.Itoa(w) + ":" + strconv.Itoa(i)
				s.Set(k, k, NoExpiry)
				// Interleave reads so pruning runs concurrently with writes.
				s.Get(k)
			}
		}(w)
	}
	wg.Wait()

	if got := s.Len(); got != workers*perWorker {
		t.Fatalf("Len() = %d, want %d", got, workers*perWorker)
	}
	for w := 0; w < workers; w++ {
		for i := 0; i < perWorker; i++ {
			k := "k:" + strconv.Itoa(w) + ":" + strconv.Itoa(i)
			if v, ok := s.Get(k); !ok || v != k {
				t.Fatalf("Get(%s) = %q, %v", k, v, ok)
			}
		}
	}
}

func TestLocalKV(t *testing.T) {
	s, clk := newTestStore(t)
	var kv KV = Local{Store: s}

	if _, err := kv.Get("x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(x) err = %v, want ErrNotFound", err)
	}
	if err := kv.Set("x", "1", 1500*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	clk.Advance(2 * time.Second)
	if v, err := kv.Get("x"); err != nil || v != "1" {
		t.Fatalf("1.5s rounds up to 2s: Get = %q, %v", v, err)
	}
	clk.Advance(time.Second)
	if _, err := kv.Get("x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(x) after expiry err = %v", err)
	}
}

func TestDurationTTL(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want TTL
	}{
		{0, NoExpiry},
		{-time.Second, NoExpiry},
		{time.Millisecond, Seconds(1)},
		{time.Second, Seconds(1)},
		{90 * time.Second, Seconds(90)},
		{90*time.Second + 1, Seconds(91)},
	}
	for _, tt := range tests {
		if got := durationTTL(tt.in); got != tt.want {
			t.Errorf("durationTTL(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
