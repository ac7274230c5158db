package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is the canonical money representation: integer US cents. All cart and
// catalog arithmetic stays in cents so repeated accumulation cannot drift;
// fractional results (tax, rate application) are rounded half-up exactly once,
// at the cent boundary.
type Cents = int64

var centsPerDollar = decimal.NewFromInt(100)

// FromDollarString parses a decimal dollar amount ("89.99") into cents.
func FromDollarString(value string) (Cents, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", value, err)
	}
	scaled := d.Mul(centsPerDollar)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-cent precision", value)
	}
	return scaled.IntPart(), nil
}

// ToDollars converts cents to a two-decimal dollar value for wire payloads.
func ToDollars(cents Cents) float64 {
	f, _ := decimal.New(cents, -2).Float64()
	return f
}

// ToDecimal returns the dollar amount at two-decimal scale.
func ToDecimal(cents Cents) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ApplyRate multiplies the amount by a rate and rounds half-up to whole cents.
func ApplyRate(cents Cents, rate decimal.Decimal) Cents {
	return decimal.NewFromInt(cents).Mul(rate).Round(0).IntPart()
}

// Format renders cents as a dollar string, e.g. 999 -> "9.99".
func Format(cents Cents) string {
	return decimal.New(cents, -2).StringFixed(2)
}
