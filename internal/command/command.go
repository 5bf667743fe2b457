// Package command defines the closed set of bot commands and parses
// canonical command strings into them.
package command

import (
	"fmt"
	"strings"

	"bizledger/internal/domain"
	"bizledger/internal/validate"
)

type Kind string

const (
	KindHelp        Kind = "help"
	KindSummary     Kind = "summary"
	KindAdvice      Kind = "advice"
	KindSale        Kind = "sale"
	KindExpense     Kind = "expense"
	KindStock       Kind = "stock"
	KindStockAdd    Kind = "stockadd"
	KindStockRemove Kind = "stockremove"
	KindUnknown     Kind = "unknown"
)

// Command is implemented only by the types in this package.
type Command interface {
	Kind() Kind
	command()
}

type Help struct{}

type Summary struct{ Period domain.Period }

type Advice struct{ Period domain.Period }

type Sale struct {
	Item  string
	Qty   int
	Price domain.Money
}

type Expense struct {
	Category string
	Cost     domain.Money
}

// StockSet records an absolute level.
type StockSet struct {
	Item string
	Qty  int
}

type StockAdd struct {
	Item  string
	Delta int
}

// StockRemove lowers the level by Delta, never below zero.
type StockRemove struct {
	Item  string
	Delta int
}

type Unknown struct{ Text string }

func (Help) Kind() Kind        { return KindHelp }
func (Summary) Kind() Kind     { return KindSummary }
func (Advice) Kind() Kind      { return KindAdvice }
func (Sale) Kind() Kind        { return KindSale }
func (Expense) Kind() Kind     { return KindExpense }
func (StockSet) Kind() Kind    { return KindStock }
func (StockAdd) Kind() Kind    { return KindStockAdd }
func (StockRemove) Kind() Kind { return KindStockRemove }
func (Unknown) Kind() Kind     { return KindUnknown }

func (Help) command()        {}
func (Summary) command()     {}
func (Advice) command()      {}
func (Sale) command()        {}
func (Expense) command()     {}
func (StockSet) command()    {}
func (StockAdd) command()    {}
func (StockRemove) command() {}
func (Unknown) command()     {}

var usages = map[Kind]string{
	KindSale:        "Usage: sale <item> <qty> <amount> [currency]  e.g. sale rice 3 ₦45000, or: sold 3 rice for 45000",
	KindExpense:     "Usage: expense <category> <amount> [currency]  e.g. expense fuel £30, or: spent £30 on fuel",
	KindStock:       "Usage: stock <item> <qty>  e.g. stock rice 20 (qty 0 or more)",
	KindStockAdd:    "Usage: add stock <item> <qty>  e.g. add stock rice 10 (qty 1 or more)",
	KindStockRemove: "Usage: remove stock <item> <qty>  e.g. remove stock rice 5 (qty 1 or more)",
}

// Usage returns the usage line for a command kind.
func Usage(k Kind) string {
	return usages[k]
}

// ValidationError reports a command with missing or malformed arguments.
type ValidationError struct {
	Kind Kind
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s command", e.Kind)
}

// ParseError reports an amount that could not be read.
type ParseError struct {
	Kind  Kind
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot read amount %q: %v", e.Kind, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse turns a canonical command string into a Command. fallback is the
// currency used when an amount carries neither a symbol nor a code.
func Parse(canonical string, fallback domain.Currency) (Command, error) {
	args := strings.Fields(canonical)
	if len(args) == 0 {
		return Unknown{}, nil
	}
	verb := strings.ToLower(args[0])
	args = args[1:]

	switch Kind(verb) {
	case KindHelp:
		return Help{}, nil
	case KindSummary:
		return Summary{Period: period(args)}, nil
	case KindAdvice:
		return Advice{Period: period(args)}, nil
	case KindSale:
		return parseSale(args, fallback)
	case KindExpense:
		return parseExpense(args, fallback)
	case KindStock:
		item, qty, ok := itemAndQty(args)
		if !ok {
			return nil, &ValidationError{Kind: KindStock}
		}
		n, ok := validate.NonNegativeInt(qty)
		if !ok {
			return nil, &ValidationError{Kind: KindStock}
		}
		return StockSet{Item: item, Qty: n}, nil
	case KindStockAdd, KindStockRemove:
		k := Kind(verb)
		item, qty, ok := itemAndQty(args)
		if !ok {
			return nil, &ValidationError{Kind: k}
		}
		n, ok := validate.PositiveInt(qty)
		if !ok {
			return nil, &ValidationError{Kind: k}
		}
		if k == KindStockAdd {
			return StockAdd{Item: item, Delta: n}, nil
		}
		return StockRemove{Item: item, Delta: n}, nil
	}
	return Unknown{Text: canonical}, nil
}

func period(args []string) domain.Period {
	if len(args) == 0 {
		return domain.PeriodToday
	}
	return domain.ParsePeriod(args[0])
}

// sale <item> <qty> <amount> [currency]
func parseSale(args []string, fallback domain.Currency) (Command, error) {
	if len(args) < 3 || len(args) > 4 {
		return nil, &ValidationError{Kind: KindSale}
	}
	item := itemName(args[0])
	qty, ok := validate.PositiveInt(args[1])
	if item == "" || !ok {
		return nil, &ValidationError{Kind: KindSale}
	}
	price, err := validate.Amount(args[2], optional(args, 3), fallback)
	if err != nil {
		return nil, &ParseError{Kind: KindSale, Token: args[2], Err: err}
	}
	return Sale{Item: item, Qty: qty, Price: price}, nil
}

// expense <category> <amount> [currency]
func parseExpense(args []string, fallback domain.Currency) (Command, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, &ValidationError{Kind: KindExpense}
	}
	category := itemName(args[0])
	if category == "" {
		return nil, &ValidationError{Kind: KindExpense}
	}
	cost, err := validate.Amount(args[1], optional(args, 2), fallback)
	if err != nil {
		return nil, &ParseError{Kind: KindExpense, Token: args[1], Err: err}
	}
	return Expense{Category: category, Cost: cost}, nil
}

// itemAndQty splits "<item words...> <qty>"; the item may span tokens.
func itemAndQty(args []string) (string, string, bool) {
	if len(args) < 2 {
		return "", "", false
	}
	item := itemName(strings.Join(args[:len(args)-1], " "))
	if item == "" {
		return "", "", false
	}
	return item, args[len(args)-1], true
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// itemName lowercases so "Rice" and "rice" are the same item.
func itemName(token string) string {
	return strings.ToLower(validate.Label(token))
}
