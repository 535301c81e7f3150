package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dujiao-next/storefront/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "cart"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "cart", `[{"productId":"p1"}]`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Set(ctx, "cart", `[]`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, ok, err := s.Get(ctx, "cart")
	if err != nil || !ok || got != "[]" {
		t.Fatalf("unexpected get: %q ok=%v err=%v", got, ok, err)
	}
	if err := s.Remove(ctx, "cart"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "cart"); ok {
		t.Fatalf("key should be removed")
	}
	if err := s.Remove(ctx, "missing"); err != nil {
		t.Fatalf("removing a missing key should not fail: %v", err)
	}
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemory())
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file storage failed: %v", err)
	}
	exerciseStorage(t, s)

	if err := s.Set(context.Background(), "authToken", "tok"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	reopened, _ := NewFile(path)
	if v, ok, _ := reopened.Get(context.Background(), "authToken"); !ok || v != "tok" {
		t.Fatalf("value should survive reopen, got %q", v)
	}
}

func TestFileStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	s, _ := NewFile(path)
	if _, _, err := s.Get(context.Background(), "cart"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDBStorage(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_test=storage"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StorageEntry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	exerciseStorage(t, NewDB(db))
}

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStorage(t, NewRedis(client, 0))

	expiring := NewRedis(client, time.Minute)
	if err := expiring.Set(context.Background(), "authToken", "tok"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if ttl := mr.TTL("authToken"); ttl != time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}
	mr.FastForward(2 * time.Minute)
	if _, ok, err := expiring.Get(context.Background(), "authToken"); ok || err != nil {
		t.Fatalf("expired key should be missing, ok=%v err=%v", ok, err)
	}
}

func TestRedisWithoutClient(t *testing.T) {
	s := NewRedis(nil, 0)
	if _, _, err := s.Get(context.Background(), "k"); err != ErrUnavailable {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestPrefixedAndJSONHelpers(t *testing.T) {
	mem := NewMemory()
	s := Prefixed(mem, "cart:42")
	ctx := context.Background()

	if err := SetJSON(ctx, s, "items", []string{"a", "b"}); err != nil {
		t.Fatalf("set json failed: %v", err)
	}
	if _, ok, _ := mem.Get(ctx, "cart:42:items"); !ok {
		t.Fatalf("prefixed key not written")
	}
	var out []string
	ok, err := GetJSON(ctx, s, "items", &out)
	if err != nil || !ok || len(out) != 2 {
		t.Fatalf("get json failed: %v %v %v", out, ok, err)
	}

	_ = mem.Set(ctx, "cart:42:bad", "{")
	if _, err := GetJSON(ctx, s, "bad", &out); err == nil {
		t.Fatalf("expected decode error")
	}
}
