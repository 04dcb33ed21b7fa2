package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseMoney parses a decimal string, reporting false for blanks and garbage
func ParseMoney(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// IsMoney reports whether s is a valid decimal amount
func IsMoney(s string) bool {
	_, ok := ParseMoney(s)
	return ok
}

// FormatMoney renders an amount with two decimals
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// CanonicalMoney rewrites a decimal string with two decimals so "10.5" and
// "10.50" compare equal. Unparseable input is returned trimmed.
func CanonicalMoney(s string) string {
	d, ok := ParseMoney(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return FormatMoney(d)
}

// SumMoney adds decimal strings, skipping blanks
func SumMoney(values ...string) string {
	total := decimal.Zero
	for _, v := range values {
		if d, ok := ParseMoney(v); ok {
			total = total.Add(d)
		}
	}
	return FormatMoney(total)
}

// MulMoney multiplies a unit price by a quantity
func MulMoney(price string, quantity int) string {
	d, ok := ParseMoney(price)
	if !ok {
		return ""
	}
	return FormatMoney(d.Mul(decimal.NewFromInt(int64(quantity))))
}

// DivMoney splits a line total back into a unit price
func DivMoney(total string, quantity int) string {
	d, ok := ParseMoney(total)
	if !ok || quantity <= 0 {
		return ""
	}
	return FormatMoney(d.DivRound(decimal.NewFromInt(int64(quantity)), 2))
}

// PercentToFraction turns "15" into "0.15"
func PercentToFraction(percent string) string {
	d, ok := ParseMoney(percent)
	if !ok {
		return strings.TrimSpace(percent)
	}
	return d.Div(hundred).String()
}

// FractionToPercent turns "0.15" into "15"
func FractionToPercent(fraction string) string {
	d, ok := ParseMoney(fraction)
	if !ok {
		return strings.TrimSpace(fraction)
	}
	return d.Mul(hundred).String()
}

// IsZeroMoney reports whether s is blank or a zero amount
func IsZeroMoney(s string) bool {
	d, ok := ParseMoney(s)
	return !ok || d.IsZero()
}
