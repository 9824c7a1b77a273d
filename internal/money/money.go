// Package money converts human-entered decimal amounts into integer cents.
package money

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid monetary amount")

// ToCents parses a free-form decimal string into minor units. Both "." and
// "," are accepted as the decimal separator: whichever appears last in the
// string wins, and the other symbol is stripped as thousands grouping.
// "1.234,56" and "1,234.56" both yield 123456. The result is rounded half
// away from zero.
func ToCents(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrInvalidAmount
	}

	dot := strings.LastIndex(trimmed, ".")
	comma := strings.LastIndex(trimmed, ",")

	var normalized string
	switch {
	case dot == -1 && comma == -1:
		normalized = trimmed
	case comma > dot:
		// comma is the decimal separator, dots group thousands
		normalized = strings.ReplaceAll(trimmed, ".", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
	default:
		// dot is the decimal separator, commas group thousands
		normalized = strings.ReplaceAll(trimmed, ",", "")
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	return int64(math.Round(value * 100)), nil
}
