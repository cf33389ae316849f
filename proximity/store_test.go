package proximity

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryPositionStoreUpsertReplaces(t *testing.T) {
	store := NewMemoryPositionStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, "x", 10.0, 20.0); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, "x", 11.0, 21.0); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	snapshot, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snapshot) != 1 {
		t.Fatalf("expected a single record per user, got %d", len(snapshot))
	}
	if snapshot[0].Latitude != 11.0 || snapshot[0].Longitude != 21.0 {
		t.Fatalf("expected the latest position, got %+v", snapshot[0])
	}
}

func TestMemoryPositionStoreDelete(t *testing.T) {
	store := NewMemoryPositionStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, "x", 10.0, 20.0); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Delete(ctx, "x"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// Deleting an untracked user is fine.
	if err := store.Delete(ctx, "ghost"); err != nil {
		t.Fatalf("Delete of untracked user failed: %v", err)
	}

	snapshot, _ := store.Snapshot(ctx)
	if len(snapshot) != 0 {
		t.Fatalf("expected empty store, got %+v", snapshot)
	}
}

func TestMemoryPositionStoreSnapshotIsCopy(t *testing.T) {
	store := NewMemoryPositionStore()
	ctx := context.Background()

	_ = store.Upsert(ctx, "x", 10.0, 20.0)

	snapshot, _ := store.Snapshot(ctx)
	snapshot[0].Latitude = 99.0

	fresh, _ := store.Snapshot(ctx)
	if fresh[0].Latitude != 10.0 {
		t.Fatalf("mutating a snapshot leaked into the store: %+v", fresh[0])
	}
}

func TestMemoryPositionStoreConcurrentScans(t *testing.T) {
	store := NewMemoryPositionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%8))
			_ = store.Upsert(ctx, id, float64(n), float64(n))
			_, _ = store.Snapshot(ctx)
			if n%2 == 0 {
				_ = store.Delete(ctx, id)
			}
		}(i)
	}
	wg.Wait()

	if _, err := store.Snapshot(ctx); err != nil {
		t.Fatalf("Snapshot after churn failed: %v", err)
	}
}
