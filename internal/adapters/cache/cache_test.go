package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"
	"tour-route-service/internal/adapters/repositories"
	"tour-route-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

var (
	_ ports.MatrixCache = (*SQLMatrixCache)(nil)
	_ ports.MatrixCache = (*SqliteMatrixCache)(nil)
	_ ports.MatrixCache = (*RedisMatrixCache)(nil)
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := repositories.InitSchema(db, repositories.Sqlite); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func newTestRedis(t *testing.T, ttl time.Duration) (*RedisMatrixCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisMatrixCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

// exerciseCache runs the shared contract against any MatrixCache.
func exerciseCache(t *testing.T, c ports.MatrixCache) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) ok=%v err=%v, want miss", ok, err)
	}

	values := []float64{1.5, 2.25, 3.125}
	if err := c.Put(ctx, "k", 3, values); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get(k) ok=%v err=%v, want hit", ok, err)
	}
	if len(got) != len(values) {
		t.Fatalf("values = %v, want %v", got, values)
	}
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("values = %v, want %v", got, values)
		}
	}

	// Replacing an entry with a different size.
	if err := c.Put(ctx, "k", 2, []float64{9}); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	got, ok, err = c.Get(ctx, "k")
	if err != nil || !ok || len(got) != 1 || got[0] != 9 {
		t.Fatalf("after replace got=%v ok=%v err=%v", got, ok, err)
	}

	// Single-point matrices have an empty triangle.
	if err := c.Put(ctx, "one", 1, nil); err != nil {
		t.Fatalf("Put(one): %v", err)
	}
	if got, ok, err := c.Get(ctx, "one"); err != nil || !ok || len(got) != 0 {
		t.Fatalf("Get(one) = %v ok=%v err=%v", got, ok, err)
	}

	if err := c.Put(ctx, "bad", 3, []float64{1}); err == nil {
		t.Fatal("expected error for size mismatch")
	}
	if err := c.Put(ctx, "", 2, []float64{1}); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestSqliteMatrixCache(t *testing.T) {
	exerciseCache(t, NewSqliteMatrixCache(openTestDB(t)))
}

func TestSqliteMatrixCacheCorruptEntry(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Exec(`INSERT INTO distance_matrix_cache (fingerprint, n, payload) VALUES ('x', 3, ?)`, []byte{1, 2, 3}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, _, err := NewSqliteMatrixCache(db).Get(context.Background(), "x"); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

func TestSQLMatrixCacheNilDB(t *testing.T) {
	c := NewSQLMatrixCache(nil)
	if _, _, err := c.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error for nil db")
	}
	if err := c.Put(context.Background(), "k", 2, []float64{1}); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestRedisMatrixCache(t *testing.T) {
	c, _ := newTestRedis(t, 0)
	exerciseCache(t, c)
}

func TestRedisMatrixCacheExpires(t *testing.T) {
	c, mr := newTestRedis(t, time.Minute)
	ctx := context.Background()

	if err := c.Put(ctx, "k", 2, []float64{4}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get after ttl ok=%v err=%v, want miss", ok, err)
	}
}

func TestRedisMatrixCacheFromURL(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewRedisMatrixCacheFromURL(context.Background(), "redis://"+mr.Addr()+"/0", 0)
	if err != nil {
		t.Fatalf("from url: %v", err)
	}
	defer c.Close()

	if _, err := NewRedisMatrixCacheFromURL(context.Background(), "not a url", 0); err == nil {
		t.Fatal("expected error for invalid url")
	}
}

func TestRedisMatrixCacheServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	c := NewRedisMatrixCache(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}), 0)
	defer c.Close()
	mr.Close()

	if _, _, err := c.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error when redis is unavailable")
	}
}
