package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an amount in cents. The zero value is $0.00.
type Money struct {
	cents int64
}

// Cents returns Money holding exactly c cents.
func Cents(c int64) Money {
	return Money{cents: c}
}

// Truncate cuts an amount to two fraction digits, rounding toward +Inf when
// roundUp is set and toward -Inf otherwise.
func Truncate(amount decimal.Decimal, roundUp bool) Money {
	scaled := amount.Shift(2)
	if roundUp {
		scaled = scaled.Ceil()
	} else {
		scaled = scaled.Floor()
	}
	return Money{cents: scaled.IntPart()}
}

// ParseMoney parses a decimal string such as "1000" or "12.345" and floors it
// to whole cents. Negative amounts are rejected.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return MoneyFromDecimal(d)
}

var maxCents = decimal.NewFromInt(math.MaxInt64)

// MoneyFromDecimal floors d to whole cents. Negative amounts and amounts
// whose cents overflow int64 are rejected.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, d.String())
	}
	if d.Shift(2).Floor().GreaterThan(maxCents) {
		return Money{}, fmt.Errorf("%w: %s is too large", ErrInvalidAmount, d.String())
	}
	return Truncate(d, false), nil
}

// MustParseMoney is ParseMoney for literals known to be valid.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 { return m.cents }

// Decimal returns the amount in dollars.
func (m Money) Decimal() decimal.Decimal { return decimal.New(m.cents, -2) }

// String returns the amount with exactly two fraction digits, e.g. "1.34".
func (m Money) String() string { return m.Decimal().StringFixed(2) }

func (m Money) IsZero() bool     { return m.cents == 0 }
func (m Money) IsPositive() bool { return m.cents > 0 }
func (m Money) IsNegative() bool { return m.cents < 0 }

func (m Money) Add(o Money) Money { return Money{cents: m.cents + o.cents} }
func (m Money) Sub(o Money) Money { return Money{cents: m.cents - o.cents} }

// Mul multiplies the amount by a whole count, such as a number of pledgers.
func (m Money) Mul(n int64) Money { return Money{cents: m.cents * n} }

// Cmp returns -1, 0 or +1.
func (m Money) Cmp(o Money) int {
	switch {
	case m.cents < o.cents:
		return -1
	case m.cents > o.cents:
		return 1
	default:
		return 0
	}
}

func (m Money) LessThan(o Money) bool    { return m.cents < o.cents }
func (m Money) GreaterThan(o Money) bool { return m.cents > o.cents }

// Format renders the amount as US dollars with digit grouping. Without
// decimals the cents are rounded half up to whole dollars.
func (m Money) Format(useDecimals bool) string {
	p := message.NewPrinter(language.AmericanEnglish)

	sign := ""
	cents := m.cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	if !useDecimals {
		return p.Sprintf("%s$%d", sign, (cents+50)/100)
	}
	return p.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON encodes the amount as a fixed two-digit string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts a JSON string or number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
	}
	parsed, err := MoneyFromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalText lets Money be read from environment variables and query strings.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := ParseMoney(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
