package services

import (
	"context"
	"time"

	"bizledger/internal/domain"
)

// BusinessStore is the business directory keyed by channel identifier.
type BusinessStore interface {
	Upsert(ctx context.Context, channelID, name string, cur domain.Currency) (*domain.Business, error)
	ByID(ctx context.Context, id string) (*domain.Business, error)
}

// EventStore is the append-only event log.
type EventStore interface {
	AppendSale(ctx context.Context, businessID, item string, qty int, price domain.Money) error
	AppendExpense(ctx context.Context, businessID, category string, cost domain.Money) error
	AppendStockEvent(ctx context.Context, businessID, item string, qty int) error
	LatestStockQuantity(ctx context.Context, businessID, item string) (int, error)
	// AdjustStock appends latest+delta, floored at 0, and returns the new level.
	AdjustStock(ctx context.Context, businessID, item string, delta int) (int, error)
}

// ReportStore answers windowed aggregate queries.
type ReportStore interface {
	SalesTotals(ctx context.Context, businessID string, since time.Time) ([]domain.SalesTotal, error)
	ExpenseTotals(ctx context.Context, businessID string, since time.Time) ([]domain.ExpenseTotal, error)
	TopProducts(ctx context.Context, businessID string, since time.Time, limit int) ([]domain.RankedItem, error)
	TopExpenseCategories(ctx context.Context, businessID string, since time.Time, limit int) ([]domain.RankedItem, error)
	LatestStockSnapshot(ctx context.Context, businessID string) ([]domain.StockLevel, error)
}

// SummaryCache holds computed summaries for a short time. Implementations
// must treat every failure as a miss.
type SummaryCache interface {
	Get(ctx context.Context, businessID string, p domain.Period, limit int) (*domain.Summary, bool)
	Put(ctx context.Context, s *domain.Summary, limit int)
	Invalidate(ctx context.Context, businessID string)
}
