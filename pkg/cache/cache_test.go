package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/branchboard/branchboard/pkg/layout"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()

	// Miss before set.
	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "key", []byte("payload"), DefaultTTL); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "payload" {
		t.Errorf("got %q, want %q", data, "payload")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "stale", []byte("old"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, ok, err := c.Get(ctx, "stale"); err != nil || ok {
		t.Errorf("expected expired entry to miss, got ok=%v err=%v", ok, err)
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("expected miss after Delete")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	c := NewNullCache()
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("payload"), DefaultTTL); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "key"); err != nil || ok {
		t.Errorf("NullCache returned a hit: ok=%v err=%v", ok, err)
	}
}

func TestLayoutKeyDeterministic(t *testing.T) {
	cfg := layout.DefaultConfig()

	k1 := LayoutKey("snap-hash", "plan-hash", cfg)
	k2 := LayoutKey("snap-hash", "plan-hash", cfg)
	if k1 != k2 {
		t.Errorf("same inputs produced different keys: %q vs %q", k1, k2)
	}
	if !strings.HasPrefix(k1, "layout:") {
		t.Errorf("key %q missing layout prefix", k1)
	}

	// Changing any input changes the key.
	if k := LayoutKey("other", "plan-hash", cfg); k == k1 {
		t.Error("different snapshot hash produced same key")
	}
	other := cfg
	other.Orientation = layout.OrientationColumns
	if k := LayoutKey("snap-hash", "plan-hash", other); k == k1 {
		t.Error("different config produced same key")
	}
}
