package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	got, err := s.Begin(ctx, "k1")
	if err != nil || got != "" {
		t.Fatalf("first begin: %q %v", got, err)
	}

	if _, err := s.Begin(ctx, "k1"); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected in-flight, got %v", err)
	}

	if err := s.Complete(ctx, "k1", "appt-1"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, err = s.Begin(ctx, "k1")
	if err != nil || got != "appt-1" {
		t.Fatalf("replay: %q %v", got, err)
	}
}

func TestMemoryStore_ReleaseAndExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, _ = s.Begin(ctx, "k")
	if err := s.Release(ctx, "k"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got, err := s.Begin(ctx, "k"); err != nil || got != "" {
		t.Fatalf("begin after release: %q %v", got, err)
	}

	_ = s.Complete(ctx, "k", "appt-2")
	now = now.Add(2 * time.Minute)

	if got, err := s.Begin(ctx, "k"); err != nil || got != "" {
		t.Fatalf("begin after expiry: %q %v", got, err)
	}
}

func TestMemoryStore_PrunesExpiredKeys(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		_, _ = s.Begin(ctx, k)
		_ = s.Complete(ctx, k, "appt-"+k)
	}
	if len(s.m) != 3 {
		t.Fatalf("len = %d, want 3", len(s.m))
	}

	now = now.Add(2 * time.Minute)
	if _, err := s.Begin(ctx, "d"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if len(s.m) != 1 {
		t.Fatalf("len after expiry = %d, want 1", len(s.m))
	}
}
