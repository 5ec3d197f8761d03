package usecases

import (
	"context"
	"fmt"

	"listingpilot/internal/domain"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// ListHistoryUseCase returns a user's saved optimizations, newest first.
type ListHistoryUseCase struct {
	store HistoryStore
}

func NewListHistoryUseCase(store HistoryStore) *ListHistoryUseCase {
	return &ListHistoryUseCase{store: store}
}

// Execute clamps limit to 1..100; zero selects the default of 20.
func (uc *ListHistoryUseCase) Execute(ctx context.Context, p domain.Principal, limit int) ([]domain.OptimizationRecord, error) {
	if p.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	records, err := uc.store.ListByUser(ctx, p.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	if records == nil {
		records = []domain.OptimizationRecord{}
	}
	return records, nil
}
