package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	type payload struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	if err := mc.Set(ctx, "k", payload{Name: "carry", Value: -1.6}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "carry" || got.Value != -1.6 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var dest string
	err := mc.Get(context.Background(), "missing", &dest)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var dest string
	if err := mc.Get(ctx, "k", &dest); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", 1, time.Minute)
	_ = mc.Set(ctx, "b", 2, time.Minute)

	if err := mc.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	ok, err := mc.Exists(ctx, "a")
	if err != nil || ok {
		t.Fatalf("key a should be gone: ok=%v err=%v", ok, err)
	}
	ok, err = mc.Exists(ctx, "b")
	if err != nil || !ok {
		t.Fatalf("key b should remain: ok=%v err=%v", ok, err)
	}
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "snapshot:latest", 1, time.Minute)
	_ = mc.Set(ctx, "snapshot:prev", 2, time.Minute)
	_ = mc.Set(ctx, "other", 3, time.Minute)

	if err := mc.DeleteByPattern(ctx, "snapshot:*"); err != nil {
		t.Fatalf("delete by pattern: %v", err)
	}

	if ok, _ := mc.Exists(ctx, "snapshot:latest", "snapshot:prev"); ok {
		t.Fatal("snapshot keys should be gone")
	}
	if ok, _ := mc.Exists(ctx, "other"); !ok {
		t.Fatal("unrelated key should remain")
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", 1, time.Minute)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "b", 2, time.Minute)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "c", 3, time.Minute) // evicts a

	if ok, _ := mc.Exists(ctx, "a"); ok {
		t.Fatal("oldest key should have been evicted")
	}
	if ok, _ := mc.Exists(ctx, "b"); !ok {
		t.Fatal("key b should remain")
	}
	if ok, _ := mc.Exists(ctx, "c"); !ok {
		t.Fatal("key c should remain")
	}
}
