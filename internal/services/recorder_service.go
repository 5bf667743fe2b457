package services

import (
	"context"
	"fmt"

	"bizledger/internal/domain"
)

// RecorderService turns validated write commands into events.
type RecorderService struct {
	Events EventStore
	Cache  SummaryCache
}

func NewRecorderService(events EventStore, cache SummaryCache) *RecorderService {
	return &RecorderService{Events: events, Cache: cache}
}

func (s *RecorderService) RecordSale(ctx context.Context, biz *domain.Business, item string, qty int, price domain.Money) error {
	if err := s.Events.AppendSale(ctx, biz.ID, item, qty, price); err != nil {
		return fmt.Errorf("append sale: %w", err)
	}
	s.invalidate(ctx, biz.ID)
	return nil
}

func (s *RecorderService) RecordExpense(ctx context.Context, biz *domain.Business, category string, cost domain.Money) error {
	if err := s.Events.AppendExpense(ctx, biz.ID, category, cost); err != nil {
		return fmt.Errorf("append expense: %w", err)
	}
	s.invalidate(ctx, biz.ID)
	return nil
}

// SetStock records qty as the absolute level of item.
func (s *RecorderService) SetStock(ctx context.Context, biz *domain.Business, item string, qty int) error {
	if err := s.Events.AppendStockEvent(ctx, biz.ID, item, qty); err != nil {
		return fmt.Errorf("append stock: %w", err)
	}
	s.invalidate(ctx, biz.ID)
	return nil
}

// AdjustStock moves the level of item by delta (negative to remove) and
// returns the level before and after. The result never drops below zero.
func (s *RecorderService) AdjustStock(ctx context.Context, biz *domain.Business, item string, delta int) (before, after int, err error) {
	before, err = s.Events.LatestStockQuantity(ctx, biz.ID, item)
	if err != nil {
		return 0, 0, fmt.Errorf("read stock: %w", err)
	}
	after, err = s.Events.AdjustStock(ctx, biz.ID, item, delta)
	if err != nil {
		return 0, 0, fmt.Errorf("adjust stock: %w", err)
	}
	s.invalidate(ctx, biz.ID)
	return before, after, nil
}

func (s *RecorderService) invalidate(ctx context.Context, businessID string) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, businessID)
	}
}
