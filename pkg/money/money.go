// Package money converts between decimal currency strings and integer cents.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotNumber  = errors.New("is not a number")
	ErrTooPrecise = errors.New("has more than two decimal places")
	ErrNegative   = errors.New("must not be negative")
	ErrOutOfRange = errors.New("is out of range")
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(1 << 53)
)

// ParseCents parses an amount such as "12.5" or "$1,024.99" into cents.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrNotNumber
	}
	if d.IsNegative() {
		return 0, ErrNegative
	}

	cents := d.Mul(hundred)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, ErrTooPrecise
	}
	if cents.GreaterThan(maxCents) {
		return 0, ErrOutOfRange
	}
	return cents.IntPart(), nil
}

// FormatCents renders cents with exactly two decimal places.
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
