package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"kinkeep/contexts/identity-access/auth-service/adapters/memory"
	domainerrors "kinkeep/contexts/identity-access/auth-service/domain/errors"
	"kinkeep/contexts/identity-access/auth-service/ports"
)

type countingStore struct {
	*memory.PendingLoginStore
	sweeps atomic.Int32
}

func (s *countingStore) Sweep(ctx context.Context, now time.Time) (int, error) {
	removed, err := s.PendingLoginStore.Sweep(ctx, now)
	s.sweeps.Add(1)
	return removed, err
}

func TestRunOnceDropsOnlyAbandonedEntries(t *testing.T) {
	store := memory.NewPendingLoginStore()
	now := time.Now().UTC()
	abandoned := ports.PendingLogin{
		Key:          "abandoned",
		TenantDomain: "family.local",
		CreatedAt:    now.Add(-time.Hour),
		ExpiresAt:    now.Add(-time.Minute),
	}
	live := ports.PendingLogin{
		Key:          "live",
		TenantDomain: "family.local",
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Hour),
	}
	if err := store.Put(context.Background(), abandoned); err != nil {
		t.Fatalf("seed abandoned entry failed: %v", err)
	}
	if err := store.Put(context.Background(), live); err != nil {
		t.Fatalf("seed live entry failed: %v", err)
	}

	sweeper := PendingLoginSweeper{Store: store, Clock: store}
	if err := sweeper.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if _, err := store.Consume(context.Background(), "abandoned", now); !errors.Is(err, domainerrors.ErrPendingLoginNotFound) {
		t.Fatalf("abandoned entry should be gone, got %v", err)
	}
	if _, err := store.Consume(context.Background(), "live", now); err != nil {
		t.Fatalf("live entry must survive the sweep: %v", err)
	}
}

func TestRunSweepsRepeatedlyUntilCancelled(t *testing.T) {
	store := &countingStore{PendingLoginStore: memory.NewPendingLoginStore()}
	sweeper := PendingLoginSweeper{Store: store, Clock: store, Interval: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for store.sweeps.Load() == 0 {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("sweeper never ran within the deadline")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
