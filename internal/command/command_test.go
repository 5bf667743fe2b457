package command_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"bizledger/internal/command"
	"bizledger/internal/domain"
	"bizledger/internal/validate"
)

func TestParseSale(t *testing.T) {
	cmd, err := command.Parse("sale palm_oil 3 ₦45,000", domain.GBP)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := cmd.(command.Sale)
	if !ok {
		t.Fatalf("want Sale, got %T", cmd)
	}
	if s.Item != "palm oil" || s.Qty != 3 || s.Price.Currency != domain.NGN || !s.Price.Amount.Equal(decimal.NewFromInt(45000)) {
		t.Fatalf("bad sale: %+v", s)
	}

	cmd, err = command.Parse("sale bin 3 400 gbp", domain.NGN)
	if err != nil {
		t.Fatal(err)
	}
	if s := cmd.(command.Sale); s.Price.Currency != domain.GBP {
		t.Fatalf("want GBP, got %s", s.Price.Currency)
	}
}

func TestParseValidation(t *testing.T) {
	for _, in := range []string{
		"sale rice 0 100",
		"sale rice three 100",
		"sale rice 3",
		"expense fuel",
		"stock rice",
		"stock rice -1",
		"stockadd rice 0",
		"stockremove rice x",
	} {
		_, err := command.Parse(in, domain.NGN)
		var ve *command.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Parse(%q): want ValidationError, got %v", in, err)
		}
		if command.Usage(ve.Kind) == "" {
			t.Fatalf("Parse(%q): no usage for %s", in, ve.Kind)
		}
	}
}

func TestParseAmountError(t *testing.T) {
	_, err := command.Parse("expense fuel abc", domain.NGN)
	var pe *command.ParseError
	if !errors.As(err, &pe) || pe.Kind != command.KindExpense {
		t.Fatalf("want ParseError, got %v", err)
	}
	if !errors.Is(err, validate.ErrInvalidAmount) {
		t.Fatalf("ParseError should unwrap to ErrInvalidAmount")
	}
}

func TestParsePeriods(t *testing.T) {
	cases := map[string]domain.Period{
		"summary":           domain.PeriodToday,
		"summary week":      domain.PeriodWeek,
		"Summary 7d":        domain.PeriodWeek,
		"advice month":      domain.PeriodMonth,
		"advice 30d":        domain.PeriodMonth,
		"summary yesterday": domain.PeriodToday,
	}
	for in, want := range cases {
		cmd, err := command.Parse(in, domain.NGN)
		if err != nil {
			t.Fatal(err)
		}
		var got domain.Period
		switch c := cmd.(type) {
		case command.Summary:
			got = c.Period
		case command.Advice:
			got = c.Period
		default:
			t.Fatalf("Parse(%q) = %T", in, cmd)
		}
		if got != want {
			t.Fatalf("Parse(%q) period = %s, want %s", in, got, want)
		}
	}
}

func TestParseStock(t *testing.T) {
	cmd, _ := command.Parse("stock Basmati rice 0", domain.NGN)
	if s, ok := cmd.(command.StockSet); !ok || s.Item != "basmati rice" || s.Qty != 0 {
		t.Fatalf("bad stock set: %#v", cmd)
	}
	cmd, _ = command.Parse("stockremove rice 5", domain.NGN)
	if s, ok := cmd.(command.StockRemove); !ok || s.Delta != 5 {
		t.Fatalf("bad stock remove: %#v", cmd)
	}
}

func TestParseUnknown(t *testing.T) {
	cmd, err := command.Parse("how are you", domain.NGN)
	if err != nil || cmd.Kind() != command.KindUnknown {
		t.Fatalf("want unknown, got %v %v", cmd, err)
	}
	cmd, _ = command.Parse("", domain.NGN)
	if cmd.Kind() != command.KindUnknown {
		t.Fatalf("empty input should be unknown")
	}
}
