package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func makeTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	// spin up in-memory Redis
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
		DB:   0,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return &Cache{client: rdb}, mr
}

func TestGetSetDeleteMusicList(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	// 1) Cache miss
	got, err := c.GetMusicList(ctx)
	if err != nil {
		t.Fatalf("GetMusicList miss: %v", err)
	}
	if got != nil {
		t.Errorf("GetMusicList miss: got %q; want nil", got)
	}
	if etag, err := c.GetEtagMusicList(ctx); err != nil || etag != "" {
		t.Errorf("GetEtagMusicList miss: %q, %v", etag, err)
	}

	// 2) Set + Get
	validUntil := time.Now().Add(2 * time.Minute)
	c.SetMusicList(ctx, []byte(`[{"title":"Song"}]`), validUntil)
	c.SetEtagMusicList(ctx, `"0badcafe"`, validUntil)

	for _, key := range []string{listKey, listEtagKey} {
		if ttl := mr.TTL(key); ttl < time.Minute || ttl > 2*time.Minute+time.Second {
			t.Errorf("TTL(%s) = %v; want ~2m", key, ttl)
		}
	}

	got, err = c.GetMusicList(ctx)
	if err != nil {
		t.Fatalf("GetMusicList hit: %v", err)
	}
	if string(got) != `[{"title":"Song"}]` {
		t.Errorf("GetMusicList = %q", got)
	}
	etag, err := c.GetEtagMusicList(ctx)
	if err != nil || etag != `"0badcafe"` {
		t.Errorf("GetEtagMusicList = %q, %v", etag, err)
	}

	// 3) Delete drops both keys
	if err := c.DeleteMusicList(ctx); err != nil {
		t.Fatalf("DeleteMusicList: %v", err)
	}
	if mr.Exists(listKey) || mr.Exists(listEtagKey) {
		t.Error("expected both keys removed")
	}
}

func TestCache_ExpiredEntryIsMiss(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	c.SetMusicList(ctx, []byte("[]"), time.Now().Add(time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := c.GetMusicList(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected miss after expiry, got %q", got)
	}
}

func TestCache_ServerDown(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()
	mr.Close()

	if _, err := c.GetMusicList(ctx); err == nil {
		t.Error("expected error from GetMusicList")
	}
	if _, err := c.GetEtagMusicList(ctx); err == nil {
		t.Error("expected error from GetEtagMusicList")
	}
	if err := c.DeleteMusicList(ctx); err == nil {
		t.Error("expected error from DeleteMusicList")
	}
	// setters only log
	c.SetMusicList(ctx, []byte("[]"), time.Now().Add(time.Minute))
}

func TestNoopCache(t *testing.T) {
	n := NewNoop()
	ctx := context.Background()
	n.SetMusicList(ctx, []byte("[]"), time.Now().Add(time.Minute))
	if got, err := n.GetMusicList(ctx); got != nil || err != nil {
		t.Errorf("noop GetMusicList = %q, %v", got, err)
	}
	if err := n.DeleteMusicList(ctx); err != nil {
		t.Errorf("noop DeleteMusicList: %v", err)
	}
}
