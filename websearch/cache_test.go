package websearch

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	cache := NewCache(time.Hour)

	if _, found := cache.Get("k"); found {
		t.Fatal("unexpected hit on empty cache")
	}

	cache.Set("k", "snippet")
	got, found := cache.Get("k")
	if !found || got != "snippet" {
		t.Fatalf("Get() = %q, %v; want snippet, true", got, found)
	}

	hits, misses, size := cache.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats() = %d, %d, %d; want 1, 1, 1", hits, misses, size)
	}
}

func TestCacheNegativeResultIsCached(t *testing.T) {
	cache := NewCache(time.Hour)
	cache.Set("missing-part", "")

	got, found := cache.Get("missing-part")
	if !found || got != "" {
		t.Fatalf("Get() = %q, %v; want empty hit", got, found)
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(10 * time.Millisecond)
	cache.Set("k", "snippet")

	time.Sleep(25 * time.Millisecond)

	if _, found := cache.Get("k"); found {
		t.Fatal("entry should have expired")
	}
	if _, _, size := cache.Stats(); size != 0 {
		t.Errorf("expired entry not evicted, size = %d", size)
	}
}
