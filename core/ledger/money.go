package ledger

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidAmount = errors.New("invalid amount, expected a number between 0 and 99999999.99")

// Money is an amount in cents (hundredths of the currency unit).
type Money int64

// MaxMoney is the largest amount a single transaction may carry.
const MaxMoney Money = 99_999_999_99

// ParseMoney parses a non-negative decimal amount such as "12", "12.5", "12,50" or "1.234", up to MaxMoney.
// Digits past the second decimal are rounded half-up on the third.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	if intPart == "" {
		intPart = "0"
	}
	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if whole > int64(MaxMoney/100) {
		return 0, ErrInvalidAmount
	}

	var cents int64
	if len(parts) == 2 {
		frac := parts[1]
		if frac == "" || !isDigits(frac) {
			return 0, ErrInvalidAmount
		}
		for len(frac) < 3 {
			frac += "0"
		}
		cents = int64(frac[0]-'0')*10 + int64(frac[1]-'0')
		if frac[2] >= '5' {
			cents++
		}
	}
	m := Money(whole*100 + cents)
	if m > MaxMoney {
		return 0, ErrInvalidAmount
	}
	return m, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Cents returns m as a plain int64 number of cents.
func (m Money) Cents() int64 { return int64(m) }

// String formats m as a decimal, e.g. "1000", "12.50" or "-3.05".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	if v%100 == 0 {
		return fmt.Sprintf("%s%d", sign, v/100)
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return m.UnmarshalText([]byte(s))
}

func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := ParseMoney(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
