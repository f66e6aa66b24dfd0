package cache

import (
	"testing"
	"time"
)

func TestLRUSetGet(t *testing.T) {
	c := NewLRUCache[string](10, time.Minute)

	c.Set("a", "1")
	got, ok := c.Get("a")
	if !ok || got != "1" {
		t.Errorf("Get(a) = %q, %v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("missing key reported present")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	// Touch a so b becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used key survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently used key evicted")
	}
	if c.Size() != 2 {
		t.Errorf("Size = %d, want 2", c.Size())
	}
}

func TestLRUTTLExpiry(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("expired entry still returned")
	}
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	if cleaned := c.CleanExpired(); cleaned != 1 {
		t.Errorf("CleanExpired = %d, want 1", cleaned)
	}
}

func TestLRUDeletePrefix(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)

	c.Set("alice:summary:all", 1)
	c.Set("alice:series:monthly", 2)
	c.Set("bob:summary:all", 3)

	if removed := c.DeletePrefix("alice:"); removed != 2 {
		t.Errorf("DeletePrefix removed %d, want 2", removed)
	}
	if _, ok := c.Get("alice:summary:all"); ok {
		t.Error("prefixed key survived DeletePrefix")
	}
	if _, ok := c.Get("bob:summary:all"); !ok {
		t.Error("unrelated key removed")
	}
}
