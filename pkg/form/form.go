// Package form parses url-encoded form values into typed fields that keep
// track of whether a value was absent, submitted empty, or submitted.
package form

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cz4r/pkg/clock"
	pkgerrors "cz4r/pkg/errors"
	"cz4r/pkg/money"
)

// State says what the client sent for a field.
type State int

const (
	Absent State = iota
	Empty
	Present
)

// Field is a parsed form value.
type Field[T any] struct {
	Name  string
	State State
	Raw   string
	Value T
}

// Ok reports whether the field carries a parsed value.
func (f Field[T]) Ok() bool { return f.State == Present }

// Or returns the value, or def when the field is absent or empty.
func (f Field[T]) Or(def T) T {
	if f.State == Present {
		return f.Value
	}
	return def
}

// Ptr returns a pointer to the value, or nil when there is none.
func (f Field[T]) Ptr() *T {
	if f.State != Present {
		return nil
	}
	v := f.Value
	return &v
}

// Require returns the value or an InvalidClientData error.
func (f Field[T]) Require() (T, error) {
	if f.State != Present {
		var zero T
		return zero, pkgerrors.InvalidClientData(f.Name, f.Raw, "is required")
	}
	return f.Value, nil
}

// Parse reads name from values and converts it with parse. Surrounding
// whitespace is ignored; a blank value is Empty and parse is not called.
func Parse[T any](values url.Values, name string, parse func(string) (T, error)) (Field[T], error) {
	f := Field[T]{Name: name}
	raw, ok := values[name]
	if !ok || len(raw) == 0 {
		return f, nil
	}
	f.Raw = raw[0]
	s := strings.TrimSpace(f.Raw)
	if s == "" {
		f.State = Empty
		return f, nil
	}
	v, err := parse(s)
	if err != nil {
		return f, pkgerrors.InvalidClientData(name, f.Raw, err.Error())
	}
	f.State = Present
	f.Value = v
	return f, nil
}

// ── Parsers ──

var (
	errNotInteger = errors.New("is not a whole number")
	errNotNumber  = errors.New("is not a number")
	errNegative   = errors.New("must not be negative")
	errNotBool    = errors.New("is not a boolean")
	errNotDate    = errors.New("is not a valid date in the format YYYY-MM-DD")
)

func parseInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errNotInteger
	}
	return n, nil
}

func parseNonNegative(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumber
	}
	if f < 0 {
		return 0, errNegative
	}
	return f, nil
}

// ParseBool accepts the checkbox spellings on/true/yes and off/false/no.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, errNotBool
}

func parseDate(s string) (time.Time, error) {
	d, err := clock.ParseDate(s)
	if err != nil {
		return time.Time{}, errNotDate
	}
	return d, nil
}

// ── Shorthands ──

func Text(values url.Values, name string) Field[string] {
	f, _ := Parse(values, name, func(s string) (string, error) { return s, nil })
	return f
}

func Int64(values url.Values, name string) (Field[int64], error) {
	return Parse(values, name, parseInt64)
}

// NonNegative parses a finite float that is zero or greater.
func NonNegative(values url.Values, name string) (Field[float64], error) {
	return Parse(values, name, parseNonNegative)
}

func Bool(values url.Values, name string) (Field[bool], error) {
	return Parse(values, name, ParseBool)
}

func Date(values url.Values, name string) (Field[time.Time], error) {
	return Parse(values, name, parseDate)
}

// Cents parses a currency amount into integer cents.
func Cents(values url.Values, name string) (Field[int64], error) {
	return Parse(values, name, money.ParseCents)
}
