package history

import (
	"context"

	"listingpilot/internal/domain"
)

// MockStore is a function-backed history store for tests.
type MockStore struct {
	SaveFn func(ctx context.Context, rec domain.OptimizationRecord) error
	ListFn func(ctx context.Context, userID string, limit int) ([]domain.OptimizationRecord, error)
}

func (m *MockStore) Save(ctx context.Context, rec domain.OptimizationRecord) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, rec)
	}
	return nil
}

func (m *MockStore) ListByUser(ctx context.Context, userID string, limit int) ([]domain.OptimizationRecord, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, limit)
	}
	return nil, nil
}
