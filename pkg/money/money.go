// Package money provides currency-safe arithmetic for Norwegian kroner using
// integer øre and the Fowler Money pattern. Statement amounts arrive in the
// Norwegian "thousand-separator + decimal-comma" notation (1.529,00) and are
// normalized here before any calculation.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// NOK is the ISO-4217 code for Norwegian kroner.
const NOK = "NOK"

var ErrMalformedAmount = errors.New("malformed amount")

// Money represents an NOK value. It wraps go-money for safe arithmetic and
// shopspring/decimal for precise conversions.
type Money struct {
	m *money.Money
}

// New creates a Money value from øre (minor units).
func New(ore int64) *Money {
	return &Money{m: money.New(ore, NOK)}
}

// Zero returns a zero NOK value.
func Zero() *Money {
	return New(0)
}

// FromDecimal creates Money from a decimal kroner value, rounding to øre.
func FromDecimal(d decimal.Decimal) *Money {
	return New(d.Mul(decimal.New(1, 2)).Round(0).IntPart())
}

// ParseNorwegian parses an amount in Norwegian statement notation: interior
// spaces and dots group thousands, a comma separates the two decimal digits.
// "1.529,00" and "1 529,00" both yield 1529.00; "349,00" yields 349.00.
func ParseNorwegian(s string) (*Money, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return nil, ErrMalformedAmount
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	return FromDecimal(d), nil
}

// Amount returns the value in øre.
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Decimal returns the value in kroner as a decimal.
func (m *Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount(), -2)
}

// IsZero returns true if the amount is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// Add adds two NOK values.
func (m *Money) Add(other *Money) *Money {
	if m == nil || m.m == nil {
		return other
	}
	if other == nil || other.m == nil {
		return m
	}
	sum, err := m.m.Add(other.m)
	if err != nil {
		// Both operands are NOK by construction; go-money only errors on a
		// currency mismatch.
		return m
	}
	return &Money{m: sum}
}

// Compare returns -1 if m < other, 0 if equal, 1 if m > other.
func (m *Money) Compare(other *Money) int {
	cmp, _ := m.orZero().Compare(other.orZero())
	return cmp
}

func (m *Money) orZero() *money.Money {
	if m == nil || m.m == nil {
		return money.New(0, NOK)
	}
	return m.m
}

// Display returns the amount formatted for presentation.
func (m *Money) Display() string {
	return m.orZero().Display()
}

// String returns the plain decimal kroner value, e.g. "1529.00".
func (m *Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON emits øre, kroner and a display string.
func (m *Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"ore":     m.Amount(),
		"amount":  m.String(),
		"display": m.Display(),
	})
}
