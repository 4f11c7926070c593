package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgredis "github.com/shopkartlabs/shopkart-backend/pkg/redis"
)

type fakeKV struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) CartKey(sessionID string) string {
	return "sk:cart:" + sessionID
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	val, ok := f.values[key]
	if !ok {
		return "", pkgredis.ErrNotFound
	}
	return val, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func TestRedisStoreRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store, err := NewRedisStore(kv, time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	cart := &Cart{
		SessionID: "sess-1",
		Items: []Item{
			{ProductID: uuid.New(), Name: "Bottle", SKU: "SKU-1", UnitPricePaise: 9_900, Qty: 2},
		},
	}
	ctx := context.Background()
	if err := store.Save(ctx, cart); err != nil {
		t.Fatalf("save: %v", err)
	}
	if kv.ttls[kv.CartKey("sess-1")] != time.Hour {
		t.Fatalf("expected TTL to be applied, got %v", kv.ttls[kv.CartKey("sess-1")])
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || len(loaded.Items) != 1 {
		t.Fatalf("unexpected load result: %+v", loaded)
	}
	if loaded.Items[0] != cart.Items[0] {
		t.Fatalf("line mismatch: %+v != %+v", loaded.Items[0], cart.Items[0])
	}
}

func TestRedisStoreLoadMissingReturnsNil(t *testing.T) {
	store, err := NewRedisStore(newFakeKV(), time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	loaded, err := store.Load(context.Background(), "absent")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil for missing cart, got %+v", loaded)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	kv := newFakeKV()
	store, err := NewRedisStore(kv, time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	ctx := context.Background()
	if err := store.Save(ctx, &Cart{SessionID: "sess-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected cart to be gone after delete")
	}
}

func TestNewRedisStoreValidation(t *testing.T) {
	if _, err := NewRedisStore(nil, time.Hour); err == nil {
		t.Fatal("expected error for nil client")
	}
	if _, err := NewRedisStore(newFakeKV(), 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
