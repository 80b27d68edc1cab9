package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/dashboard-backend/internal/errs"
)

func newTestRedisKV(t *testing.T) (*redisKV, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisKV(client), mr
}

func TestRedisKV_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	kv, mr := newTestRedisKV(t)

	if _, err := kv.Get(ctx, "k"); !errs.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := kv.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("get: %q, %v", got, err)
	}
	if ttl := mr.TTL("k"); ttl != 0 {
		t.Errorf("expected no expiry, got %v", ttl)
	}
	if err := kv.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if mr.Exists("k") {
		t.Error("expected key removed")
	}
}

func TestKVStore_RedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, mr := newTestRedisKV(t)
	s := NewKVStore(kv, "dashboardLayout")

	want := sampleLayout()
	if err := s.Save(ctx, "u1", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("dashboardLayout_u1") {
		t.Fatalf("expected key dashboardLayout_u1, got %v", mr.Keys())
	}
	got, err := s.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertRoundTrip(t, got, want)
}

func TestRedisKV_ServerDown(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	kv := NewRedisKV(client)
	mr.Close()

	err = kv.Set(ctx, "k", []byte("v"))
	if _, ok := err.(*errs.DatabaseError); !ok {
		t.Fatalf("expected DatabaseError, got %T: %v", err, err)
	}
}
