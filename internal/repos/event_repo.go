package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizledger/internal/domain"
)

// EventRepo appends sale, expense and stock events. Rows are never updated.
type EventRepo struct {
	db  *sqlx.DB
	Now func() time.Time
}

func NewEventRepo(db *sqlx.DB) *EventRepo { return &EventRepo{db: db, Now: time.Now} }

func (r *EventRepo) AppendSale(ctx context.Context, businessID, item string, qty int, price domain.Money) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sale_events(id, business_id, item, qty, amount, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), businessID, item, qty, price.Amount.String(), string(price.Currency), stamp(r.Now()))
	return err
}

func (r *EventRepo) AppendExpense(ctx context.Context, businessID, category string, cost domain.Money) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expense_events(id, business_id, category, amount, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), businessID, category, cost.Amount.String(), string(cost.Currency), stamp(r.Now()))
	return err
}

// AppendStockEvent records an absolute stock level.
func (r *EventRepo) AppendStockEvent(ctx context.Context, businessID, item string, qty int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stock_events(id, business_id, item, qty, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.NewString(), businessID, item, qty, stamp(r.Now()))
	return err
}

// LatestStockQuantity returns the most recent level for item, or 0 when
// the item has never been recorded.
func (r *EventRepo) LatestStockQuantity(ctx context.Context, businessID, item string) (int, error) {
	var qty int
	err := r.db.GetContext(ctx, &qty, `
		SELECT qty FROM stock_events
		WHERE business_id = ? AND item = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, businessID, item)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// AdjustStock appends latest+delta (floored at 0) as a new absolute level in
// one statement, so concurrent adjustments cannot lose each other's effect.
// A level above domain.MaxQuantity is not written and returns
// domain.ErrQuantityLimit.
func (r *EventRepo) AdjustStock(ctx context.Context, businessID, item string, delta int) (int, error) {
	var qty int
	err := r.db.GetContext(ctx, &qty, `
		INSERT INTO stock_events(id, business_id, item, qty, created_at)
		SELECT ?, ?, ?, next, ? FROM (
			SELECT MAX(0, COALESCE((
				SELECT qty FROM stock_events
				WHERE business_id = ? AND item = ?
				ORDER BY created_at DESC, rowid DESC
				LIMIT 1
			), 0) + ?) AS next
		)
		WHERE next <= ?
		RETURNING qty
	`, uuid.NewString(), businessID, item, stamp(r.Now()), businessID, item, delta, domain.MaxQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrQuantityLimit
	}
	if err != nil {
		return 0, err
	}
	return qty, nil
}
