package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// minusSign is the glyph used for negative amounts. It is a real minus
// (U+2212), not a hyphen, regardless of locale conventions.
const minusSign = "−"

// Money is an exact decimal amount in a single currency.
type Money struct {
	Amount   decimal.Decimal
	Currency CurrencyCode
}

// NewMoney creates a Money value.
func NewMoney(amount decimal.Decimal, currency CurrencyCode) Money {
	return Money{Amount: amount, Currency: currency}
}

// Add returns m + other. Mixing currencies is a programmer error, never
// coerced.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns m - other.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Format renders the amount with its currency symbol and thousands
// grouping. Formatting is purely presentational; the decimal amount is
// never altered.
func (m Money) Format() string {
	info, known := currencies[m.Currency]
	if !known {
		info = currencyInfo{Exponent: 2, Thousand: ","}
	}

	magnitude := groupThousands(m.Amount.Abs().StringFixed(info.Exponent), info.Thousand)

	var b strings.Builder
	if m.Amount.IsNegative() {
		b.WriteString(minusSign)
	}
	switch {
	case !known:
		b.WriteString(string(m.Currency))
		b.WriteString(" ")
		b.WriteString(magnitude)
	case info.SymbolBefore:
		b.WriteString(info.Symbol)
		b.WriteString(magnitude)
	default:
		b.WriteString(magnitude)
		b.WriteString(" ")
		b.WriteString(info.Symbol)
	}

	return b.String()
}

// String implements fmt.Stringer.
func (m Money) String() string {
	return m.Format()
}

// groupThousands inserts sep every three digits into the integer part of a
// plain fixed-point number such as "666808.63".
func groupThousands(s, sep string) string {
	if sep == "" {
		return s
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}

	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(fracPart)

	return b.String()
}
