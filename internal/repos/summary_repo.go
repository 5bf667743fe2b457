package repos

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
)

// SummaryRepo runs the windowed queries behind reports. Amounts are stored
// as decimal text, so totals are summed here with decimal rather than by
// SQLite, whose SUM works in floating point.
type SummaryRepo struct{ db *sqlx.DB }

func NewSummaryRepo(db *sqlx.DB) *SummaryRepo { return &SummaryRepo{db: db} }

// amountRow is one sale or expense event inside the window. Name is the
// item for sales and the category for expenses.
type amountRow struct {
	Name     string          `db:"name"`
	Currency domain.Currency `db:"currency"`
	Amount   decimal.Decimal `db:"amount"`
	Qty      int             `db:"qty"`
}

func (r *SummaryRepo) sales(ctx context.Context, businessID string, since time.Time) ([]amountRow, error) {
	var rows []amountRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT item AS name, currency, amount, qty
		FROM sale_events
		WHERE business_id = ? AND created_at >= ?
	`, businessID, stamp(since))
	return rows, err
}

func (r *SummaryRepo) expenses(ctx context.Context, businessID string, since time.Time) ([]amountRow, error) {
	var rows []amountRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT category AS name, currency, amount, 0 AS qty
		FROM expense_events
		WHERE business_id = ? AND created_at >= ?
	`, businessID, stamp(since))
	return rows, err
}

func (r *SummaryRepo) SalesTotals(ctx context.Context, businessID string, since time.Time) ([]domain.SalesTotal, error) {
	rows, err := r.sales(ctx, businessID, since)
	if err != nil {
		return nil, err
	}
	var out []domain.SalesTotal
	for _, g := range group(rows, func(row amountRow) string { return string(row.Currency) }) {
		out = append(out, domain.SalesTotal{Currency: g.Currency, Amount: g.Amount, Qty: g.Qty})
	}
	slices.SortFunc(out, func(a, b domain.SalesTotal) int { return cmp.Compare(a.Currency, b.Currency) })
	return out, nil
}

func (r *SummaryRepo) ExpenseTotals(ctx context.Context, businessID string, since time.Time) ([]domain.ExpenseTotal, error) {
	rows, err := r.expenses(ctx, businessID, since)
	if err != nil {
		return nil, err
	}
	var out []domain.ExpenseTotal
	for _, g := range group(rows, func(row amountRow) string { return string(row.Currency) }) {
		out = append(out, domain.ExpenseTotal{Currency: g.Currency, Amount: g.Amount})
	}
	slices.SortFunc(out, func(a, b domain.ExpenseTotal) int { return cmp.Compare(a.Currency, b.Currency) })
	return out, nil
}

// TopProducts ranks (item, currency) pairs by revenue, then quantity, then name.
func (r *SummaryRepo) TopProducts(ctx context.Context, businessID string, since time.Time, limit int) ([]domain.RankedItem, error) {
	rows, err := r.sales(ctx, businessID, since)
	if err != nil {
		return nil, err
	}
	ranked := rank(rows)
	slices.SortStableFunc(ranked, func(a, b domain.RankedItem) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Qty, a.Qty); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return top(ranked, limit), nil
}

// TopExpenseCategories ranks (category, currency) pairs by total, then name.
func (r *SummaryRepo) TopExpenseCategories(ctx context.Context, businessID string, since time.Time, limit int) ([]domain.RankedItem, error) {
	rows, err := r.expenses(ctx, businessID, since)
	if err != nil {
		return nil, err
	}
	ranked := rank(rows)
	slices.SortStableFunc(ranked, func(a, b domain.RankedItem) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return top(ranked, limit), nil
}

// LatestStockSnapshot returns the current level of every item, highest
// first. It ignores any reporting window.
func (r *SummaryRepo) LatestStockSnapshot(ctx context.Context, businessID string) ([]domain.StockLevel, error) {
	var rows []domain.StockLevel
	err := r.db.SelectContext(ctx, &rows, `
		SELECT item, qty, created_at FROM (
			SELECT item, qty, created_at,
			       ROW_NUMBER() OVER (PARTITION BY item ORDER BY created_at DESC, rowid DESC) AS rn
			FROM stock_events
			WHERE business_id = ?
		)
		WHERE rn = 1
		ORDER BY qty DESC, item ASC
	`, businessID)
	return rows, err
}

// group sums rows sharing a key, keeping first-seen order.
func group(rows []amountRow, key func(amountRow) string) []amountRow {
	idx := make(map[string]int)
	var out []amountRow
	for _, row := range rows {
		k := key(row)
		i, ok := idx[k]
		if !ok {
			idx[k] = len(out)
			out = append(out, amountRow{Name: row.Name, Currency: row.Currency, Amount: decimal.Zero})
			i = len(out) - 1
		}
		out[i].Amount = out[i].Amount.Add(row.Amount)
		out[i].Qty += row.Qty
	}
	return out
}

func rank(rows []amountRow) []domain.RankedItem {
	groups := group(rows, func(row amountRow) string { return row.Name + "\x00" + string(row.Currency) })
	out := make([]domain.RankedItem, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.RankedItem{Name: g.Name, Currency: g.Currency, Amount: g.Amount, Qty: g.Qty})
	}
	return out
}

func top(items []domain.RankedItem, limit int) []domain.RankedItem {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
