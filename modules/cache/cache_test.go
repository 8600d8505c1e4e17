package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const testRedisAddr = "localhost:6379"

// setupTestCache skips the test when Redis is unavailable.
func setupTestCache(t *testing.T, prefix string) (*Cache, func()) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: testRedisAddr,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	c := New(client, prefix, 5*time.Minute)
	cleanup := func() {
		c.DeletePattern(ctx, "*")
		client.Close()
	}
	return c, cleanup
}

func TestCacheSetGetDelete(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:watch:")
	defer cleanup()

	ctx := context.Background()

	type payload struct {
		Hash  string `json:"hash"`
		Title string `json:"title"`
	}

	if err := c.Set(ctx, "abc123", payload{Hash: "abc123", Title: "Series A"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got payload
	found, err := c.Get(ctx, "abc123", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() reported miss after Set()")
	}
	if got.Title != "Series A" {
		t.Errorf("got.Title = %q, want Series A", got.Title)
	}

	if err := c.Delete(ctx, "abc123"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	found, err = c.Get(ctx, "abc123", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() reported hit after Delete()")
	}
}

func TestCacheStats(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:stats:")
	defer cleanup()

	ctx := context.Background()

	var dest map[string]any
	c.Get(ctx, "missing", &dest)
	c.Set(ctx, "present", map[string]any{"k": "v"})
	c.Get(ctx, "present", &dest)

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 set", stats)
	}
	if stats.HitRate != 50 {
		t.Errorf("HitRate = %v, want 50", stats.HitRate)
	}
}
