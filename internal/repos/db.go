package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// TimeLayout is fixed width so created_at sorts and compares as text.
const TimeLayout = "2006-01-02 15:04:05.000000"

func stamp(t time.Time) string { return t.UTC().Format(TimeLayout) }

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: ":memory:" databases are per-connection, and stock
	// adjustments rely on statements being serialized.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;
PRAGMA busy_timeout = 5000;

-- Businesses (one per channel identifier)
CREATE TABLE IF NOT EXISTS businesses(
  id TEXT PRIMARY KEY,
  channel_id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  default_currency TEXT NOT NULL CHECK (default_currency IN ('GBP','USD','NGN')),
  created_at TEXT NOT NULL
);

-- Append-only event logs. Amounts are exact decimal text, summed in Go.
CREATE TABLE IF NOT EXISTS sale_events(
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL REFERENCES businesses(id),
  item TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (typeof(qty) = 'integer' AND qty BETWEEN 1 AND 1000000000),
  amount TEXT NOT NULL CHECK (typeof(amount) = 'text' AND amount NOT LIKE '-%'),
  currency TEXT NOT NULL CHECK (currency IN ('GBP','USD','NGN')),
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_biz_created ON sale_events(business_id, created_at);

CREATE TABLE IF NOT EXISTS expense_events(
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL REFERENCES businesses(id),
  category TEXT NOT NULL,
  amount TEXT NOT NULL CHECK (typeof(amount) = 'text' AND amount NOT LIKE '-%'),
  currency TEXT NOT NULL CHECK (currency IN ('GBP','USD','NGN')),
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_expenses_biz_created ON expense_events(business_id, created_at);

CREATE TABLE IF NOT EXISTS stock_events(
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL REFERENCES businesses(id),
  item TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (typeof(qty) = 'integer' AND qty BETWEEN 0 AND 1000000000),
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stock_biz_item ON stock_events(business_id, item, created_at);

-- Events are immutable
CREATE TRIGGER IF NOT EXISTS sale_events_no_update BEFORE UPDATE ON sale_events
BEGIN SELECT RAISE(ABORT, 'sale events are append-only'); END;
CREATE TRIGGER IF NOT EXISTS expense_events_no_update BEFORE UPDATE ON expense_events
BEGIN SELECT RAISE(ABORT, 'expense events are append-only'); END;
CREATE TRIGGER IF NOT EXISTS stock_events_no_update BEFORE UPDATE ON stock_events
BEGIN SELECT RAISE(ABORT, 'stock events are append-only'); END;
`
	_, err := db.Exec(schema)
	return err
}
