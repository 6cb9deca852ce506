// Package duration converts a free-text duration expression into a day count.
//
// Users type things like "2 semanas", "45 dias" or "1 mês" into a free-form
// field. Days turns that into an integer number of days with deliberately
// forgiving rules: unit keywords are matched as case-insensitive substrings,
// and unrecognised phrasing falls back to a default rather than erroring.
package duration

import (
	"strconv"
	"strings"
)

const (
	// DefaultDays is used for an empty input or a day expression without digits.
	DefaultDays = 7
	// FallbackDays is used when no unit keyword is recognised at all.
	FallbackDays = 30

	daysPerWeek  = 7
	daysPerMonth = 30
)

// Days converts a free-text duration to a positive day count.
//
// Matching is checked in priority order: days, then weeks, then months.
// "dia" also matches "dias", so the plural needs no separate check, and the
// month check covers both the accented and unaccented spelling.
//
// Digit extraction is global: every digit character in the string is
// concatenated into one number, so "1 semana e 2 dias" yields 12 days (the
// "dia" branch wins and sees digits "12"). That collapse is intentional
// behaviour carried over from the product, not something to fix here.
func Days(s string) int {
	if strings.TrimSpace(s) == "" {
		return DefaultDays
	}

	lower := strings.ToLower(s)

	if strings.Contains(lower, "dia") {
		n, ok := extractNumber(lower)
		if !ok {
			return DefaultDays
		}
		return n
	}

	if strings.Contains(lower, "semana") {
		n, ok := extractNumber(lower)
		if !ok {
			n = 1
		}
		return n * daysPerWeek
	}

	if strings.Contains(lower, "mês") || strings.Contains(lower, "mes") {
		n, ok := extractNumber(lower)
		if !ok {
			n = 1
		}
		return n * daysPerMonth
	}

	return FallbackDays
}

// extractNumber concatenates every ASCII digit in s and parses the result.
// Returns ok=false when s has no digits, parses to zero, or overflows int;
// all three fall back to the branch default so the result stays positive.
func extractNumber(s string) (int, bool) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
