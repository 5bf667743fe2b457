package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	GBP Currency = "GBP"
	USD Currency = "USD"
	NGN Currency = "NGN"
)

// Currencies lists the supported set in display order.
var Currencies = []Currency{GBP, USD, NGN}

// ParseCurrency accepts a code in any case ("gbp", "Usd").
func ParseCurrency(s string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case GBP, USD, NGN:
		return c, true
	}
	return "", false
}

// MaxQuantity bounds every quantity and stock level.
const MaxQuantity = 1_000_000_000

// ErrQuantityLimit is returned when a stock change would exceed MaxQuantity.
var ErrQuantityLimit = errors.New("quantity limit exceeded")

type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

type Business struct {
	ID              string   `db:"id" json:"id"`
	Name            string   `db:"name" json:"name"`
	ChannelID       string   `db:"channel_id" json:"channel_id"`
	DefaultCurrency Currency `db:"default_currency" json:"default_currency"`
	CreatedAt       string   `db:"created_at" json:"created_at"`
}

// Period is a reporting window keyword.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod maps a keyword to a Period. Empty and unrecognised values are today.
func ParsePeriod(s string) Period {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "7d":
		return PeriodWeek
	case "month", "30d":
		return PeriodMonth
	}
	return PeriodToday
}

func (p Period) Lookback() time.Duration {
	switch p {
	case PeriodWeek:
		return 7 * 24 * time.Hour
	case PeriodMonth:
		return 30 * 24 * time.Hour
	}
	return 24 * time.Hour
}

func (p Period) Label() string {
	switch p {
	case PeriodWeek:
		return "last 7 days"
	case PeriodMonth:
		return "last 30 days"
	}
	return "today"
}
