package cache_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"winnow/internal/cache"
	"winnow/internal/logging"
)

func openStore(t *testing.T, path string) *cache.Store {
	t.Helper()
	store, err := cache.Open(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPutGetRoundtrip(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "cache.db"))
	ctx := context.Background()
	mtime := time.Now()

	if err := store.Put(ctx, "/media/a.jpg", mtime, 100, "digest-a"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	hash, hit, err := store.Get(ctx, "/media/a.jpg", mtime, 100)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !hit || hash != "digest-a" {
		t.Fatalf("expected hit with digest-a, got hit=%v hash=%q", hit, hash)
	}
}

func TestGetMissesOnIdentityMismatch(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "cache.db"))
	ctx := context.Background()
	mtime := time.Now()

	if err := store.Put(ctx, "/media/a.jpg", mtime, 100, "digest-a"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, hit, _ := store.Get(ctx, "/media/a.jpg", mtime.Add(time.Second), 100); hit {
		t.Fatal("expected miss after mtime change")
	}
	if _, hit, _ := store.Get(ctx, "/media/a.jpg", mtime, 101); hit {
		t.Fatal("expected miss after size change")
	}
	if _, hit, _ := store.Get(ctx, "/media/other.jpg", mtime, 100); hit {
		t.Fatal("expected miss for unknown path")
	}
}

func TestPutReplacesExistingRow(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "cache.db"))
	ctx := context.Background()
	first := time.Now()
	second := first.Add(time.Minute)

	if err := store.Put(ctx, "/media/a.jpg", first, 100, "old"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "/media/a.jpg", second, 200, "new"); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	if _, hit, _ := store.Get(ctx, "/media/a.jpg", first, 100); hit {
		t.Fatal("stale identity should miss after replacement")
	}
	hash, hit, err := store.Get(ctx, "/media/a.jpg", second, 200)
	if err != nil || !hit || hash != "new" {
		t.Fatalf("expected replacement hit, got hit=%v hash=%q err=%v", hit, hash, err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one live entry per path, got %d", count)
	}
}

func TestEntriesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()
	mtime := time.Now()

	store, err := cache.Open(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Put(ctx, "/media/a.jpg", mtime, 100, "digest-a"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := openStore(t, path)
	hash, hit, err := reopened.Get(ctx, "/media/a.jpg", mtime, 100)
	if err != nil || !hit || hash != "digest-a" {
		t.Fatalf("expected persisted entry, got hit=%v hash=%q err=%v", hit, hash, err)
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "cache.db"))
	ctx := context.Background()
	mtime := time.Now()

	const writers = 32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			path := fmt.Sprintf("/media/%d.jpg", n)
			if err := store.Put(ctx, path, mtime, int64(n+1), fmt.Sprintf("digest-%d", n)); err != nil {
				t.Errorf("Put %d failed: %v", n, err)
				return
			}
			if _, _, err := store.Get(ctx, path, mtime, int64(n+1)); err != nil {
				t.Errorf("Get %d failed: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != writers {
		t.Fatalf("expected %d entries, got %d", writers, count)
	}
}
