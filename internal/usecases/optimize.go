package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"listingpilot/internal/domain"
	"listingpilot/internal/observability"
	"listingpilot/pkg/log"
)

// OptimizeListingUseCase is the full request flow: quota check, generation,
// usage accounting and history. Accounting and history failures are logged
// and never fail a successful generation.
type OptimizeListingUseCase struct {
	generate *GenerateListingUseCase
	quota    *QuotaUseCase
	history  HistoryStore
	now      func() time.Time
}

// NewOptimizeListingUseCase accepts a nil history store when persistence is disabled.
func NewOptimizeListingUseCase(generate *GenerateListingUseCase, quota *QuotaUseCase, history HistoryStore) *OptimizeListingUseCase {
	return &OptimizeListingUseCase{generate: generate, quota: quota, history: history, now: time.Now}
}

// OptimizeResult adds the caller's usage and the saved record ID.
type OptimizeResult struct {
	*GenerateResult
	RecordID string
	Usage    domain.Usage
}

func (uc *OptimizeListingUseCase) Execute(ctx context.Context, p domain.Principal, req GenerateRequest) (*OptimizeResult, error) {
	ctx = log.WithFields(ctx, "user_id", p.UserID)

	if _, _, err := uc.generate.Validate(req); err != nil {
		return nil, err
	}
	usage, err := uc.quota.Check(ctx, p)
	if err != nil {
		return nil, err
	}

	res, err := uc.generate.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &OptimizeResult{GenerateResult: res, Usage: usage}
	if u, err := uc.quota.Consume(ctx, p); err != nil {
		log.GlobalErrorCtx(ctx, "usage not recorded", "error", err)
	} else {
		out.Usage = u
	}

	if uc.history != nil {
		rec := domain.OptimizationRecord{
			ID:            uuid.NewString(),
			UserID:        p.UserID,
			Platform:      res.Platform,
			Mode:          res.Mode,
			Input:         res.Product,
			Listing:       res.Listing,
			QualityScore:  res.QualityScore,
			BaselineScore: res.BaselineScore,
			SEOScore:      res.Content.SEOScore,
			Warnings:      res.Warnings,
			Model:         res.Model,
			CreatedAt:     uc.now().UTC(),
		}
		saveCtx, span := observability.Tracer().Start(ctx, "SaveHistory")
		span.SetAttributes(attribute.String("record_id", rec.ID))
		if err := uc.history.Save(saveCtx, rec); err != nil {
			span.RecordError(err)
			log.GlobalErrorCtx(ctx, "history not saved", "record_id", rec.ID, "error", err)
		} else {
			out.RecordID = rec.ID
		}
		span.End()
	}
	return out, nil
}
