package usecases

import (
	"context"
	"fmt"
	"time"

	"listingpilot/internal/domain"
	"listingpilot/internal/observability"
	"listingpilot/pkg/log"
)

// QuotaUseCase meters optimizations per user per calendar month (UTC).
type QuotaUseCase struct {
	counter UsageCounter
	policy  QuotaPolicy
	now     func() time.Time
}

func NewQuotaUseCase(counter UsageCounter, policy QuotaPolicy) *QuotaUseCase {
	return &QuotaUseCase{counter: counter, policy: policy, now: time.Now}
}

// Usage reports the caller's state for the current month.
func (uc *QuotaUseCase) Usage(ctx context.Context, p domain.Principal) (domain.Usage, error) {
	period := uc.period()
	limit, unlimited := uc.limit(p)
	used, err := uc.counter.Get(ctx, usageKey(p.UserID, period))
	if err != nil {
		return domain.Usage{}, fmt.Errorf("read usage: %w", err)
	}
	return newUsage(period, used, limit, unlimited), nil
}

// Check fails with ErrQuotaExceeded when the caller has no optimizations left.
func (uc *QuotaUseCase) Check(ctx context.Context, p domain.Principal) (domain.Usage, error) {
	u, err := uc.Usage(ctx, p)
	if err != nil {
		return u, err
	}
	if !u.Unlimited && u.Remaining <= 0 {
		observability.QuotaRejections.WithLabelValues(string(p.Tier)).Inc()
		log.GlobalWarnCtx(ctx, "quota exceeded", "user_id", p.UserID, "used", u.Used, "limit", u.Limit)
		return u, domain.ErrQuotaExceeded
	}
	return u, nil
}

// Consume records one optimization. Admins are never counted.
func (uc *QuotaUseCase) Consume(ctx context.Context, p domain.Principal) (domain.Usage, error) {
	period := uc.period()
	limit, unlimited := uc.limit(p)
	if uc.policy.IsAdmin(p.Email) {
		return newUsage(period, 0, limit, true), nil
	}
	used, err := uc.counter.Increment(ctx, usageKey(p.UserID, period), uc.periodEnd())
	if err != nil {
		return domain.Usage{}, fmt.Errorf("record usage: %w", err)
	}
	return newUsage(period, used, limit, unlimited), nil
}

func (uc *QuotaUseCase) limit(p domain.Principal) (int64, bool) {
	if uc.policy.IsAdmin(p.Email) {
		return 0, true
	}
	l := uc.policy.TierLimit(p.Tier)
	return int64(l), l < 0
}

func (uc *QuotaUseCase) period() string {
	return uc.now().UTC().Format("2006-01")
}

// periodEnd is the first instant of next month.
func (uc *QuotaUseCase) periodEnd() time.Time {
	now := uc.now().UTC()
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

func usageKey(userID, period string) string {
	return "usage:" + userID + ":" + period
}

func newUsage(period string, used, limit int64, unlimited bool) domain.Usage {
	u := domain.Usage{Period: period, Used: used, Limit: limit, Unlimited: unlimited}
	if unlimited {
		u.Limit = -1
		u.Remaining = -1
		return u
	}
	u.Remaining = max(limit-used, 0)
	return u
}
