// Package core implements the equal-split ledger: money handling, the
// balance reducer, the greedy settlement matcher and the person summary.
// All arithmetic is done in integer cents; floats only appear at the
// serialization boundary.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a decimal string to Money with cent precision.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Unlike a
// rounding parser, anything beyond two fractional digits is rejected: the API
// contract is "at most 2 decimal places". Returns ErrInvalidAmount for
// malformed input, negative values, zero, or excess precision.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	if len(fracPart) > 2 {
		return Money{}, ErrInvalidAmount
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents}, nil
}

// Float64 returns the amount in currency units for serialization.
// Use cents for all calculations.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

// CentsToFloat converts a signed cent value to currency units.
func CentsToFloat(cents int64) float64 {
	return float64(cents) / 100.0
}
