// booking/money.go
package booking

import (
	"fmt"
	"math"
	"strconv"
)

// CurrencyINR is the only currency bookings are priced in.
const CurrencyINR = "INR"

// Money is an amount in paise. It is encoded as rupees in JSON.
type Money int64

// Rupees returns n whole rupees.
func Rupees(n int64) Money {
	return Money(n * 100)
}

// FromRupees converts a decimal rupee amount, rounding to the nearest paisa.
func FromRupees(r float64) Money {
	return Money(math.Round(r * 100))
}

// MinorUnits is the amount a payment gateway expects.
func (m Money) MinorUnits() int64 {
	return int64(m)
}

func (m Money) Rupees() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	return fmt.Sprintf("₹%.2f", m.Rupees())
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Rupees(), 'f', -1, 64)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*m = FromRupees(r)
	return nil
}

func minMoney(a, b Money) Money {
	if a < b {
		return a
	}
	return b
}
