package cache

import (
	"testing"
	"time"
)

func TestContentHash_Deterministic(t *testing.T) {
	lines := []string{"a", "b", "c"}
	if ContentHash(lines) != ContentHash(append([]string(nil), lines...)) {
		t.Fatal("ContentHash should be deterministic for identical input")
	}
	if ContentHash(lines) == ContentHash([]string{"a", "b", "d"}) {
		t.Fatal("ContentHash should differ for different input")
	}
}

// TestCache_HitAfterStore covers §8 S6: a rerun with unchanged content and
// mtime is a cache hit.
func TestCache_HitAfterStore(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	hash := ContentHash([]string{"line one", "line two"})
	mtime := time.Now()
	c.Store("/tmp/crash.log", hash, mtime, nil)

	// Give the async persist goroutine time to settle; the in-memory
	// lookup does not depend on it, but this mirrors a real caller that
	// waits for Store to be observable before the next Lookup.
	time.Sleep(10 * time.Millisecond)

	if _, hit := c.Lookup("/tmp/crash.log", hash, mtime); !hit {
		t.Fatal("expected cache hit for unchanged content and mtime")
	}

	stats := c.StatsSnapshot()
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
}

func TestCache_MissOnChangedHash(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	mtime := time.Now()
	c.Store("/tmp/crash.log", ContentHash([]string{"a"}), mtime, nil)

	if _, hit := c.Lookup("/tmp/crash.log", ContentHash([]string{"b"}), mtime); hit {
		t.Fatal("expected miss when content hash changes")
	}
}

func TestCache_ClearRemovesEntry(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	hash := ContentHash([]string{"a"})
	mtime := time.Now()
	c.Store("/tmp/crash.log", hash, mtime, nil)
	time.Sleep(10 * time.Millisecond)

	c.Clear("/tmp/crash.log")
	if _, hit := c.Lookup("/tmp/crash.log", hash, mtime); hit {
		t.Fatal("expected miss after Clear")
	}
}
