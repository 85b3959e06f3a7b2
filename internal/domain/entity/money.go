package entity

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

const CurrencyIDR = "IDR"

// MaxAmount is the largest amount a JSON number carries without rounding.
const MaxAmount int64 = 1 << 53

var ErrInvalidAmount = errors.New("invalid amount")

type Money struct {
	Value    int64
	Currency string
}

func IDR(value int64) Money {
	return Money{Value: value, Currency: CurrencyIDR}
}

// ParseAmount coerces a decoded request value into a whole amount between 0
// and MaxAmount. Fractional numbers are truncated toward zero; strings must
// hold an integer.
func ParseAmount(v any) (int64, error) {
	var amount int64
	switch n := v.(type) {
	case nil:
		return 0, ErrInvalidAmount
	case int:
		amount = int64(n)
	case int64:
		amount = n
	case float64:
		f, err := truncate(n)
		if err != nil {
			return 0, err
		}
		amount = f
	case json.Number:
		if i, err := n.Int64(); err == nil {
			amount = i
			break
		}
		f, err := n.Float64()
		if err != nil {
			return 0, ErrInvalidAmount
		}
		if amount, err = truncate(f); err != nil {
			return 0, err
		}
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		amount = i
	default:
		return 0, ErrInvalidAmount
	}

	if amount < 0 || amount > MaxAmount {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

func truncate(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, ErrInvalidAmount
	}
	return int64(f), nil
}
