// Package core holds the domain records and the pure computations over them.
//
// Money is stored as integer cents. Parsing and arithmetic that would lose
// precision in float64 go through shopspring/decimal.
package core

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in cents.
type Money struct {
	Cents int64
}

var ErrInvalidAmount = errors.New("invalid amount")

var hundred = decimal.NewFromInt(100)

// ParseAmount converts a decimal string ("12.34", also accepting a comma
// separator) into Money, rounding half-up to the cent. Negative amounts are
// rejected.
func ParseAmount(s string) (Money, error) {
	d, err := decimal.NewFromString(normalizeSeparator(s))
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: d.Mul(hundred).Round(0).IntPart()}, nil
}

func normalizeSeparator(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, '.')
			continue
		}
		if s[i] == ' ' {
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

// Validate rejects negative amounts. Zero is allowed: entries record what the
// user typed, and a zero entry is not an error.
func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Positive() bool { return m.Cents > 0 }

// Decimal returns the amount in units as a decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.Cents).Div(hundred)
}

// Percent returns m scaled by p/100, rounded half-up to the cent.
func (m Money) Percent(p int) Money {
	scaled := decimal.NewFromInt(m.Cents).
		Mul(decimal.NewFromInt(int64(p))).
		DivRound(hundred, 0)
	return Money{Cents: scaled.IntPart()}
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

// String formats the amount in units with two decimals.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a plain number of units ("amount": 12.34),
// matching the persisted record shape.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		// Retry as a quoted string.
		var s string
		if err2 := json.Unmarshal(data, &s); err2 != nil {
			return fmt.Errorf("decode amount: %w", err)
		}
		raw = json.Number(s)
	}
	d, err := decimal.NewFromString(raw.String())
	if err != nil {
		return fmt.Errorf("decode amount %q: %w", raw.String(), ErrInvalidAmount)
	}
	m.Cents = d.Mul(hundred).Round(0).IntPart()
	return nil
}
