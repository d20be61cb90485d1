// Package money handles monetary amounts as integer euro cents.
//
// Amounts enter the API as decimal strings ("12.34" or "12,34") and are stored
// as int64 cents to keep aggregation exact. Floats are never used for money.
package money

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	apperrors "focolare/internal/errors"
)

// maxIntPart guards against overflow when multiplying the integer part by 100.
const maxIntPart = (1<<63 - 1) / 100

// ParseCents converts a decimal amount string to cents.
//
// Both dot and comma decimal separators are accepted. Digits past the second
// decimal place are half-up rounded. Zero and negative amounts are rejected:
// an expense amount is positive by definition.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperrors.ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, apperrors.ErrInvalidAmount
	}

	intPart, fracPart, found := strings.Cut(s, ".")
	if found && strings.Contains(fracPart, ".") {
		return 0, apperrors.ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return 0, apperrors.ErrInvalidAmount
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || iv > maxIntPart {
		return 0, apperrors.ErrInvalidAmount
	}

	cents := iv * 100
	if len(fracPart) > 0 {
		cents += int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		cents += int64(fracPart[1] - '0')
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		cents++
	}

	if cents <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}
	return cents, nil
}

// FormatCents renders cents as a plain decimal string ("1234" -> "12.34").
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
