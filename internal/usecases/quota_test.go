package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"listingpilot/internal/domain"
	"listingpilot/internal/usecases"
)

var october = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func newQuota(counter *memCounter) *usecases.QuotaUseCase {
	uc := usecases.NewQuotaUseCase(counter, defaultPolicy())
	uc.SetClock(func() time.Time { return october })
	return uc
}

func TestQuota_ConsumeThenCheck_RejectsAtLimit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	counter := newMemCounter()
	uc := newQuota(counter)
	user := domain.Principal{UserID: "u1", Tier: domain.TierFree}

	// Act
	for range 2 {
		if _, err := uc.Check(ctx, user); err != nil {
			t.Fatalf("check before limit: %v", err)
		}
		if _, err := uc.Consume(ctx, user); err != nil {
			t.Fatalf("consume: %v", err)
		}
	}
	usage, err := uc.Check(ctx, user)

	// Assert
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if usage.Used != 2 || usage.Remaining != 0 || usage.Limit != 2 {
		t.Errorf("usage = %+v", usage)
	}
	if counter.values["usage:u1:2026-10"] != 2 {
		t.Errorf("counter keys = %v", counter.values)
	}
}

func TestQuota_UnlimitedTierAndAdmins(t *testing.T) {
	ctx := context.Background()
	counter := newMemCounter()
	uc := newQuota(counter)

	business := domain.Principal{UserID: "b1", Tier: domain.TierBusiness}
	admin := domain.Principal{UserID: "a1", Email: "ops@example.com", Tier: domain.TierFree}

	for _, p := range []domain.Principal{business, admin} {
		u, err := uc.Check(ctx, p)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", p.UserID, err)
		}
		if !u.Unlimited || u.Limit != -1 || u.Remaining != -1 {
			t.Errorf("%s: usage = %+v", p.UserID, u)
		}
	}

	if _, err := uc.Consume(ctx, admin); err != nil {
		t.Fatal(err)
	}
	if _, counted := counter.values["usage:a1:2026-10"]; counted {
		t.Error("admin usage must not be counted")
	}
}

func TestQuota_CounterFailureIsReturned(t *testing.T) {
	counter := newMemCounter()
	counter.err = errBoom
	uc := newQuota(counter)

	_, err := uc.Check(context.Background(), domain.Principal{UserID: "u1", Tier: domain.TierPro})

	if !errors.Is(err, errBoom) {
		t.Errorf("expected counter error, got %v", err)
	}
}

func TestQuota_UnknownTierUsesFreeLimit(t *testing.T) {
	uc := newQuota(newMemCounter())

	u, err := uc.Usage(context.Background(), domain.Principal{UserID: "u1", Tier: "enterprise"})

	if err != nil {
		t.Fatal(err)
	}
	if u.Limit != 2 || u.Period != "2026-10" {
		t.Errorf("usage = %+v", u)
	}
}
