package quota_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"listingpilot/internal/adapters/quota"
)

func TestMemoryCounter_IncrementAndGet(t *testing.T) {
	// Arrange
	ctx := context.Background()
	c := quota.NewMemoryCounter(time.Minute)
	defer c.Close()
	expireAt := time.Now().Add(time.Hour)

	// Act
	for range 3 {
		if _, err := c.Increment(ctx, "usage:u1:2026-10", expireAt); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := c.Get(ctx, "usage:u1:2026-10")
	missing, _ := c.Get(ctx, "usage:u2:2026-10")

	// Assert
	if got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	if missing != 0 {
		t.Errorf("missing key: got %d, want 0", missing)
	}
}

func TestMemoryCounter_ExpiredKeyRestartsAtOne(t *testing.T) {
	ctx := context.Background()
	c := quota.NewMemoryCounter(time.Minute)
	defer c.Close()
	now := time.Date(2026, time.October, 31, 23, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })
	monthEnd := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)

	_, _ = c.Increment(ctx, "k", monthEnd)
	_, _ = c.Increment(ctx, "k", monthEnd)
	now = monthEnd.Add(time.Second)

	if got, _ := c.Get(ctx, "k"); got != 0 {
		t.Errorf("expired Get = %d, want 0", got)
	}
	if got, _ := c.Increment(ctx, "k", monthEnd.AddDate(0, 1, 0)); got != 1 {
		t.Errorf("Increment after expiry = %d, want 1", got)
	}
}

func TestMemoryCounter_ConcurrentIncrementsAreCounted(t *testing.T) {
	ctx := context.Background()
	c := quota.NewMemoryCounter(time.Minute)
	defer c.Close()
	expireAt := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Increment(ctx, "k", expireAt)
		}()
	}
	wg.Wait()

	if got, _ := c.Get(ctx, "k"); got != 50 {
		t.Errorf("got %d, want 50", got)
	}
}

func TestMemoryCounter_JanitorDropsExpiredKeys(t *testing.T) {
	c := quota.NewMemoryCounter(5 * time.Millisecond)
	defer c.Close()
	_, _ = c.Increment(context.Background(), "k", time.Now().Add(-time.Second))

	deadline := time.Now().Add(time.Second)
	for c.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if c.Len() != 0 {
		t.Error("expected janitor to remove the expired key")
	}
}
