package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesTotal struct {
	Currency Currency        `db:"currency" json:"currency"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
	Qty      int             `db:"qty" json:"qty"`
}

type ExpenseTotal struct {
	Currency Currency        `db:"currency" json:"currency"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
}

// RankedItem is a product or expense category with its windowed total.
// Qty is zero for expense categories.
type RankedItem struct {
	Name     string          `db:"name" json:"name"`
	Currency Currency        `db:"currency" json:"currency"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
	Qty      int             `db:"qty" json:"qty,omitempty"`
}

type StockLevel struct {
	Item      string `db:"item" json:"item"`
	Qty       int    `db:"qty" json:"qty"`
	UpdatedAt string `db:"created_at" json:"updated_at"`
}

// Summary is the aggregated view of one business over one period.
// Stock is always the current snapshot regardless of Period.
type Summary struct {
	BusinessID    string                       `json:"business_id"`
	BusinessName  string                       `json:"business_name"`
	Period        Period                       `json:"period"`
	Since         time.Time                    `json:"since"`
	Sales         map[Currency]SalesTotal      `json:"sales"`
	Expenses      map[Currency]decimal.Decimal `json:"expenses"`
	Net           map[Currency]decimal.Decimal `json:"net"`
	TopProducts   []RankedItem                 `json:"top_products"`
	TopCategories []RankedItem                 `json:"top_categories"`
	Stock         []StockLevel                 `json:"stock"`
}
