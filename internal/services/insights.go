package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
)

const (
	MaxTips = 6

	overstockLevel = 200
)

var concentrationShare = decimal.RequireFromString("0.7")

// Insights derives short tips from a summary. Rules run in a fixed order
// and the result never exceeds MaxTips entries.
func Insights(s *domain.Summary) []string {
	var tips []string

	totalSales := decimal.Zero
	for _, t := range s.Sales {
		totalSales = totalSales.Add(t.Amount)
	}
	totalExpenses := decimal.Zero
	for _, e := range s.Expenses {
		totalExpenses = totalExpenses.Add(e)
	}

	if !totalSales.IsPositive() {
		tips = append(tips, "No sales logged for this period. Record them as you go, e.g. \"sold 3 rice for 45000\".")
	}
	if !totalExpenses.IsPositive() {
		tips = append(tips, "No expenses tracked yet. Log costs like \"spent 3000 on fuel\" to see your real profit.")
	}

	switch n := len(s.TopProducts); {
	case n >= 2:
		// Only the lead product's currency is compared.
		lead := s.TopProducts[0]
		sum := decimal.Zero
		for _, p := range s.TopProducts {
			if p.Currency == lead.Currency {
				sum = sum.Add(p.Amount)
			}
		}
		if sum.IsPositive() && lead.Amount.GreaterThanOrEqual(sum.Mul(concentrationShare)) {
			tips = append(tips, fmt.Sprintf("Most of your revenue comes from %s. Keep it in stock, but relying on one product is risky.", lead.Name))
		}
	case n == 1:
		tips = append(tips, fmt.Sprintf("%s is your only seller. Try adding a related product to spread your sales.", s.TopProducts[0].Name))
	}

	if len(s.Stock) > 0 {
		top := s.Stock[0]
		switch {
		case top.Qty == 0:
			tips = append(tips, fmt.Sprintf("%s is out of stock. Restock soon so you don't miss sales.", top.Item))
		case top.Qty >= overstockLevel:
			tips = append(tips, fmt.Sprintf("You hold %d %s. Consider a promo to move some of it.", top.Qty, top.Item))
		}
	} else {
		tips = append(tips, "No stock recorded. Send \"stock <item> <qty>\" so I can warn you before you run out.")
	}

	for _, c := range domain.Currencies {
		if n, ok := s.Net[c]; ok && n.IsNegative() {
			tips = append(tips, fmt.Sprintf("You spent more than you sold in %s. Review your %s expenses.", c, c))
		}
	}

	if len(tips) > MaxTips {
		tips = tips[:MaxTips]
	}
	return tips
}
