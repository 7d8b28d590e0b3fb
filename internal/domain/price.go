package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a backend price field into a decimal. The backend
// serializes decimals as JSON strings and historic records contain empty
// or malformed values, so parsing is defensive: anything unusable maps
// to nil rather than an error. A nil price never matches a price filter.
func ParsePrice(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}
