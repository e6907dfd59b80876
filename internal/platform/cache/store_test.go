package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "props", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "props:nba", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "props" {
				errCh <- errors.New("unexpected loaded value")
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ReloadsAfterExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(5 * time.Second)
	now := time.Date(2024, 10, 16, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		return int(calls.Add(1)), nil
	}

	first, _ := store.GetOrLoad(context.Background(), "k", loader)
	second, _ := store.GetOrLoad(context.Background(), "k", loader)
	if first != 1 || second != 1 {
		t.Fatalf("expected cached value 1, got %v and %v", first, second)
	}

	now = now.Add(5 * time.Second)
	third, _ := store.GetOrLoad(context.Background(), "k", loader)
	if third != 2 {
		t.Fatalf("expected reload after expiry, got %v", third)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("redis down")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected failed load to leave cache empty")
	}

	v, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) {
		return "ok", nil
	})
	if err != nil || v != "ok" {
		t.Fatalf("expected retry to load, got %v (%v)", v, err)
	}
}

func TestStore_EmptyKeyBypassesCache(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, nil
	}

	_, _ = store.GetOrLoad(context.Background(), "", loader)
	_, _ = store.GetOrLoad(context.Background(), "", loader)
	if calls.Load() != 2 {
		t.Fatalf("expected empty key to call loader each time")
	}
	if _, err := store.GetOrLoad(context.Background(), "k", nil); err == nil {
		t.Fatalf("expected error for nil loader")
	}
}
