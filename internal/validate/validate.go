package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
)

var ErrInvalidAmount = errors.New("invalid amount")

var reNumber = regexp.MustCompile(`^[0-9]*\.?[0-9]+$`)

const maxChannelLen = 256

var symbols = map[rune]domain.Currency{
	'£': domain.GBP,
	'$': domain.USD,
	'₦': domain.NGN,
}

// Amount reads an amount token such as "45000", "₦45,000" or "12.50" with an
// optional following currency code token. Without a symbol or code the
// fallback currency applies, and NGN when fallback is empty.
func Amount(token, next string, fallback domain.Currency) (domain.Money, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(token), ",", "")

	var cur domain.Currency
	for sym, c := range symbols {
		if strings.HasPrefix(raw, string(sym)) {
			cur = c
			raw = strings.TrimPrefix(raw, string(sym))
			break
		}
	}
	if cur == "" {
		if c, ok := domain.ParseCurrency(next); ok {
			cur = c
		} else if fallback != "" {
			cur = fallback
		} else {
			cur = domain.NGN
		}
	}

	if raw == "" || !reNumber.MatchString(raw) {
		return domain.Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return domain.Money{}, ErrInvalidAmount
	}
	return domain.Money{Amount: d, Currency: cur}, nil
}

// PositiveInt parses a quantity in 1..domain.MaxQuantity.
func PositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > domain.MaxQuantity {
		return 0, false
	}
	return n, true
}

// NonNegativeInt parses a stock level in 0..domain.MaxQuantity.
func NonNegativeInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > domain.MaxQuantity {
		return 0, false
	}
	return n, true
}

// Channel accepts any opaque sender identifier that is non-empty, at most
// maxChannelLen bytes and free of control characters.
func Channel(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxChannelLen || !utf8.ValidString(s) {
		return "", false
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return "", false
	}
	return s, true
}

// Name validates a displayable business name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Label turns an underscore-joined token back into display text.
func Label(token string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(token, "_", " ")), " ")
}
