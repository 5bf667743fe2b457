package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizledger/internal/domain"
)

type BusinessRepo struct {
	db  *sqlx.DB
	Now func() time.Time
}

func NewBusinessRepo(db *sqlx.DB) *BusinessRepo { return &BusinessRepo{db: db, Now: time.Now} }

// Upsert creates the business for channelID if it does not exist yet and
// returns the stored record. An existing record is never modified.
func (r *BusinessRepo) Upsert(ctx context.Context, channelID, name string, cur domain.Currency) (*domain.Business, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO businesses(id, channel_id, name, default_currency, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(channel_id) DO NOTHING
	`, uuid.NewString(), channelID, name, string(cur), stamp(r.Now()))
	if err != nil {
		return nil, err
	}
	return r.ByChannel(ctx, channelID)
}

// ByID returns sql.ErrNoRows when the business does not exist.
func (r *BusinessRepo) ByID(ctx context.Context, id string) (*domain.Business, error) {
	var b domain.Business
	err := r.db.GetContext(ctx, &b, `
		SELECT id, channel_id, name, default_currency, created_at
		FROM businesses WHERE id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessRepo) ByChannel(ctx context.Context, channelID string) (*domain.Business, error) {
	var b domain.Business
	err := r.db.GetContext(ctx, &b, `
		SELECT id, channel_id, name, default_currency, created_at
		FROM businesses WHERE channel_id = ?
	`, channelID)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
