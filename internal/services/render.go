package services

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
)

var currencySymbols = map[domain.Currency]string{
	domain.GBP: "£",
	domain.USD: "$",
	domain.NGN: "₦",
}

// FormatMoney renders an amount as "₦45,000.00".
func FormatMoney(amount decimal.Decimal, c domain.Currency) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	sym, ok := currencySymbols[c]
	if !ok {
		sym = string(c) + " "
	}
	whole, frac, _ := strings.Cut(amount.StringFixed(2), ".")
	n, _ := new(big.Int).SetString(whole, 10)
	return sign + sym + humanize.BigComma(n) + "." + frac
}

const helpText = `Here's what I understand:
• sold 3 rice for 45000   (or: sale rice 3 ₦45000)
• spent £30 on fuel       (or: expense fuel 30 GBP)
• stock rice 20           (set the current level)
• add stock rice 10 / remove stock rice 5
• summary [today|week|month]
• advice [today|week|month]`

func HelpText() string { return helpText }

func UnknownText() string {
	return "Sorry, I didn't get that.\n" + helpText
}

// SummaryText renders the full numeric breakdown followed by the tips.
func SummaryText(s *domain.Summary, tips []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: summary (%s)\n", s.BusinessName, s.Period.Label())

	b.WriteString("\nSales:\n")
	if len(s.Sales) == 0 {
		b.WriteString("  none\n")
	}
	for _, c := range domain.Currencies {
		if t, ok := s.Sales[c]; ok {
			fmt.Fprintf(&b, "  %s (%d sold)\n", FormatMoney(t.Amount, c), t.Qty)
		}
	}

	b.WriteString("Expenses:\n")
	if len(s.Expenses) == 0 {
		b.WriteString("  none\n")
	}
	for _, c := range domain.Currencies {
		if e, ok := s.Expenses[c]; ok {
			fmt.Fprintf(&b, "  %s\n", FormatMoney(e, c))
		}
	}

	if len(s.Net) > 0 {
		b.WriteString("Net:\n")
		for _, c := range domain.Currencies {
			if n, ok := s.Net[c]; ok {
				fmt.Fprintf(&b, "  %s\n", FormatMoney(n, c))
			}
		}
	}

	if len(s.TopProducts) > 0 {
		b.WriteString("Top products:\n")
		for i, p := range s.TopProducts {
			fmt.Fprintf(&b, "  %d. %s: %s (%d)\n", i+1, p.Name, FormatMoney(p.Amount, p.Currency), p.Qty)
		}
	}
	if len(s.TopCategories) > 0 {
		b.WriteString("Top expenses:\n")
		for i, c := range s.TopCategories {
			fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, c.Name, FormatMoney(c.Amount, c.Currency))
		}
	}
	if len(s.Stock) > 0 {
		b.WriteString("Stock now:\n")
		for _, l := range s.Stock {
			fmt.Fprintf(&b, "  %s: %d\n", l.Item, l.Qty)
		}
	}

	writeTips(&b, tips)
	return strings.TrimRight(b.String(), "\n")
}

// AdviceText renders the headline and tips only.
func AdviceText(s *domain.Summary, tips []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: advice (%s)\n", s.BusinessName, s.Period.Label())
	top := "None yet"
	if len(s.TopProducts) > 0 {
		p := s.TopProducts[0]
		top = fmt.Sprintf("%s (%s)", p.Name, FormatMoney(p.Amount, p.Currency))
	}
	fmt.Fprintf(&b, "Top product: %s\n", top)
	writeTips(&b, tips)
	return strings.TrimRight(b.String(), "\n")
}

func writeTips(b *strings.Builder, tips []string) {
	if len(tips) == 0 {
		return
	}
	b.WriteString("\nTips:\n")
	for _, t := range tips {
		fmt.Fprintf(b, "• %s\n", t)
	}
}
