package utils

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotANumber = errors.New("not a number")

// ParseAmount parses a decimal amount typed into a form. Blank input yields (nil, nil).
func ParseAmount(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, ErrNotANumber
	}
	return &d, nil
}

// LineTotal returns price × quantity.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// ToCents rounds d to the two places a NUMERIC(10,2) column keeps.
func ToCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// AmountJSON converts a stored amount to the number the API renders.
func AmountJSON(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// AmountJSONPtr is AmountJSON for nullable columns.
func AmountJSONPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := AmountJSON(*d)
	return &v
}
