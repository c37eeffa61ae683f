package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStoreSetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	store.Set(ctx, "season:s1", "alpha")
	value, ok := store.Get(ctx, "season:s1")
	if !ok || value != "alpha" {
		t.Fatalf("unexpected get result: %v %t", value, ok)
	}

	store.Delete(ctx, "season:s1")
	if _, ok := store.Get(ctx, "season:s1"); ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestStoreDeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "regulation:s1:ageRules", 1)
	store.Set(ctx, "regulation:s1:rankingRules", 2)
	store.Set(ctx, "regulation:s2:rankingRules", 3)

	store.DeletePrefix(ctx, "regulation:s1:")

	if _, ok := store.Get(ctx, "regulation:s1:rankingRules"); ok {
		t.Fatal("expected s1 entries to be deleted")
	}
	if _, ok := store.Get(ctx, "regulation:s2:rankingRules"); !ok {
		t.Fatal("expected s2 entry to survive")
	}
}

func TestStoreGetOrLoadCachesValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	loads := 0

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "key", func(context.Context) (any, error) {
			loads++
			return "loaded", nil
		})
		if err != nil {
			t.Fatalf("get or load: %v", err)
		}
		if value != "loaded" {
			t.Fatalf("unexpected value: %v", value)
		}
	}

	if loads != 1 {
		t.Fatalf("expected a single load, got %d", loads)
	}
}

func TestStoreGetOrLoadDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	wantErr := errors.New("boom")
	loads := 0

	for i := 0; i < 2; i++ {
		_, err := store.GetOrLoad(ctx, "key", func(context.Context) (any, error) {
			loads++
			return nil, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if loads != 2 {
		t.Fatalf("expected reload after error, got %d loads", loads)
	}
}
