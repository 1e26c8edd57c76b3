// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a currency code is empty or unknown.
const DefaultCurrency = money.CHF

// currency returns the go-money currency for code, falling back to
// DefaultCurrency for codes go-money does not know.
func currency(code string) *money.Currency {
	if c := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code))); c != nil {
		return c
	}
	return money.GetCurrency(DefaultCurrency)
}

// KnownCurrency reports whether code is an ISO currency go-money can format.
func KnownCurrency(code string) bool {
	return money.GetCurrency(strings.ToUpper(strings.TrimSpace(code))) != nil
}

// ToMinor converts a major-unit amount to rounded minor units (cents).
func ToMinor(amount float64, code string) int64 {
	cur := currency(code)
	return decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
}

// RoundCents rounds amount to the currency's minor unit.
func RoundCents(amount float64, code string) float64 {
	cur := currency(code)
	return decimal.NewFromFloat(amount).Round(int32(cur.Fraction)).InexactFloat64()
}

// FormatMoney formats an amount in the given currency with the currency's
// grapheme, separators and fraction digits.
// e.g., (1234.567, "USD") -> "$1,234.57"
func FormatMoney(amount float64, code string) string {
	cur := currency(code)
	return money.New(ToMinor(amount, cur.Code), cur.Code).Display()
}

// FormatMoneyWhole formats an amount without minor units, for tables.
// e.g., (1234.567, "USD") -> "$1,235"
func FormatMoneyWhole(amount float64, code string) string {
	cur := currency(code)
	whole := decimal.NewFromFloat(amount).Round(0).IntPart()
	sign := ""
	if whole < 0 {
		sign, whole = "-", -whole
	}
	return withGrapheme(cur, sign, FormatNumber(whole))
}

// FormatMoneyCompact formats an amount with a K/M/B suffix and the
// currency grapheme placed the way FormatMoneyWhole places it.
// e.g., (1234567, "USD") -> "$1.2M"
func FormatMoneyCompact(amount float64, code string) string {
	cur := currency(code)
	sign := ""
	if amount < 0 {
		sign, amount = "-", -amount
	}
	return withGrapheme(cur, sign, FormatCompact(amount))
}

// withGrapheme places the currency symbol before or after s following
// the currency's display template.
func withGrapheme(cur *money.Currency, sign, s string) string {
	switch {
	case cur.Grapheme == "":
		return sign + s
	case strings.HasPrefix(cur.Template, "$"):
		return sign + cur.Grapheme + s
	default:
		return sign + s + " " + cur.Grapheme
	}
}

// FormatCompact formats a value with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M"
func FormatCompact(v float64) string {
	abs := math.Abs(v)

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.2f%%", f*100)
}

// FormatDelta formats a signed money difference.
func FormatDelta(delta float64, code string) string {
	if delta >= 0 {
		return "+" + FormatMoneyWhole(delta, code)
	}
	return "-" + FormatMoneyWhole(-delta, code)
}

// FormatMonths renders a month count as years and months.
// e.g., 27 -> "2y 3m", 24 -> "2y", 5 -> "5m", 0 -> "never"
func FormatMonths(months int) string {
	if months <= 0 {
		return "never"
	}
	y, m := months/12, months%12
	switch {
	case y == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dy", y)
	default:
		return fmt.Sprintf("%dy %dm", y, m)
	}
}
