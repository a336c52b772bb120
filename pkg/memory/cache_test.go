package memory

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("ranking", []string{"a", "b"})
	got, ok := c.Get("ranking")
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got.([]string)) != 2 {
		t.Errorf("unexpected value: %v", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c := New(time.Minute)
	if _, ok := c.Get("absent"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("ranking", 1)

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("ranking"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestCacheStopIsIdempotentAndKeepsCacheUsable(t *testing.T) {
	c := New(time.Minute)
	c.Set("ranking", 1)

	c.Stop()
	c.Stop()

	if _, ok := c.Get("ranking"); !ok {
		t.Error("cache should stay readable after Stop")
	}
	c.Set("other", 2)
	if _, ok := c.Get("other"); !ok {
		t.Error("cache should stay writable after Stop")
	}
}

func TestCacheDelete(t *testing.T) {
	c := New(time.Minute)
	c.Set("ranking", 1)
	c.Delete("ranking")
	if _, ok := c.Get("ranking"); ok {
		t.Error("expected miss after delete")
	}
}
