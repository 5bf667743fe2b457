package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
)

const (
	// ChatTopN limits rankings in chat replies.
	ChatTopN = 3
	// ReportTopN limits rankings in the detailed report.
	ReportTopN = 5
)

// SummaryService aggregates a business's events over a reporting period.
type SummaryService struct {
	Reports    ReportStore
	Businesses BusinessStore
	Cache      SummaryCache
	Now        func() time.Time
}

func NewSummaryService(reports ReportStore, businesses BusinessStore, cache SummaryCache) *SummaryService {
	return &SummaryService{Reports: reports, Businesses: businesses, Cache: cache, Now: time.Now}
}

func (s *SummaryService) Summarize(ctx context.Context, biz *domain.Business, p domain.Period, limit int) (*domain.Summary, error) {
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, biz.ID, p, limit); ok {
			return cached, nil
		}
	}

	since := s.Now().Add(-p.Lookback())
	sales, err := s.Reports.SalesTotals(ctx, biz.ID, since)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	expenses, err := s.Reports.ExpenseTotals(ctx, biz.ID, since)
	if err != nil {
		return nil, fmt.Errorf("expense totals: %w", err)
	}
	top, err := s.Reports.TopProducts(ctx, biz.ID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	cats, err := s.Reports.TopExpenseCategories(ctx, biz.ID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}
	stock, err := s.Reports.LatestStockSnapshot(ctx, biz.ID)
	if err != nil {
		return nil, fmt.Errorf("stock snapshot: %w", err)
	}

	sum := &domain.Summary{
		BusinessID:    biz.ID,
		BusinessName:  biz.Name,
		Period:        p,
		Since:         since,
		Sales:         make(map[domain.Currency]domain.SalesTotal, len(sales)),
		Expenses:      make(map[domain.Currency]decimal.Decimal, len(expenses)),
		TopProducts:   top,
		TopCategories: cats,
		Stock:         stock,
	}
	for _, r := range sales {
		sum.Sales[r.Currency] = r
	}
	for _, r := range expenses {
		sum.Expenses[r.Currency] = r.Amount
	}
	sum.Net = Net(sum.Sales, sum.Expenses)

	if s.Cache != nil {
		s.Cache.Put(ctx, sum, limit)
	}
	return sum, nil
}

// Report loads the business by id and summarizes it with the report limit.
// It returns sql.ErrNoRows (wrapped) when the business does not exist.
func (s *SummaryService) Report(ctx context.Context, businessID string, p domain.Period) (*domain.Summary, error) {
	biz, err := s.Businesses.ByID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}
	return s.Summarize(ctx, biz, p, ReportTopN)
}

// Net is sales minus expenses for every currency present in either map.
func Net(sales map[domain.Currency]domain.SalesTotal, expenses map[domain.Currency]decimal.Decimal) map[domain.Currency]decimal.Decimal {
	net := make(map[domain.Currency]decimal.Decimal, len(sales)+len(expenses))
	for c, s := range sales {
		net[c] = s.Amount
	}
	for c, e := range expenses {
		net[c] = net[c].Sub(e)
	}
	return net
}
