package validate_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
	"bizledger/internal/validate"
)

func TestAmount(t *testing.T) {
	cases := []struct {
		token, next string
		fallback    domain.Currency
		want        string
		cur         domain.Currency
	}{
		{"₦45000", "", "GBP", "45000", domain.NGN},
		{"45", "GBP", "NGN", "45", domain.GBP},
		{"45", "gbp", "NGN", "45", domain.GBP},
		{"45", "", "NGN", "45", domain.NGN},
		{"45", "", "", "45", domain.NGN},
		{"£30", "", "NGN", "30", domain.GBP},
		{"$1,250.75", "", "NGN", "1250.75", domain.USD},
		{"12,000", "usd", "NGN", "12000", domain.USD},
		{"400", "naira", "USD", "400", domain.USD},
	}
	for _, tc := range cases {
		m, err := validate.Amount(tc.token, tc.next, tc.fallback)
		if err != nil {
			t.Fatalf("Amount(%q,%q): %v", tc.token, tc.next, err)
		}
		if !m.Amount.Equal(decimal.RequireFromString(tc.want)) || m.Currency != tc.cur {
			t.Fatalf("Amount(%q,%q) = %s %s, want %s %s", tc.token, tc.next, m.Amount, m.Currency, tc.want, tc.cur)
		}
	}
}

func TestAmountRejects(t *testing.T) {
	for _, tok := range []string{"abc", "", "£", "₦", "-5", "1.2.3", "NaN", "Inf", "12abc"} {
		if _, err := validate.Amount(tok, "", domain.NGN); !errors.Is(err, validate.ErrInvalidAmount) {
			t.Fatalf("Amount(%q) want ErrInvalidAmount, got %v", tok, err)
		}
	}
}

func TestQuantities(t *testing.T) {
	if _, ok := validate.PositiveInt("0"); ok {
		t.Fatal("0 is not positive")
	}
	if n, ok := validate.PositiveInt("3"); !ok || n != 3 {
		t.Fatalf("want 3, got %d %v", n, ok)
	}
	if n, ok := validate.NonNegativeInt("0"); !ok || n != 0 {
		t.Fatalf("want 0 allowed, got %d %v", n, ok)
	}
	if _, ok := validate.NonNegativeInt("-1"); ok {
		t.Fatal("-1 must be rejected")
	}
	if _, ok := validate.PositiveInt("ten"); ok {
		t.Fatal("words are not quantities")
	}
	if n, ok := validate.NonNegativeInt("1000000000"); !ok || n != domain.MaxQuantity {
		t.Fatalf("the limit itself is allowed, got %d %v", n, ok)
	}
	for _, s := range []string{"1000000001", "9223372036854775807", "99999999999999999999"} {
		if _, ok := validate.PositiveInt(s); ok {
			t.Fatalf("PositiveInt(%q) must be rejected", s)
		}
		if _, ok := validate.NonNegativeInt(s); ok {
			t.Fatalf("NonNegativeInt(%q) must be rejected", s)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := validate.Label("palm_oil__5l"); got != "palm oil 5l" {
		t.Fatalf("got %q", got)
	}
}

func TestChannel(t *testing.T) {
	if _, ok := validate.Channel("+2348012345678"); !ok {
		t.Fatal("phone number should be a valid channel")
	}
	for _, ch := range []string{"a b", "whatsapp/+44 7700 900123", strings.Repeat("x", 200)} {
		if got, ok := validate.Channel(" " + ch + " "); !ok || got != ch {
			t.Fatalf("Channel(%q) = %q %v, want it accepted as-is", ch, got, ok)
		}
	}
	for _, ch := range []string{"", "   ", "a\nb", strings.Repeat("x", 257)} {
		if _, ok := validate.Channel(ch); ok {
			t.Fatalf("Channel(%q) must be rejected", ch)
		}
	}
}
