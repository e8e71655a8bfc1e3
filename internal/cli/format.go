// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/bplan/internal/analytics"
)

// ErrInvalidAmount is returned when a money amount cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// nonFinite renders the display guard for NaN and ±Inf.
// ok is false for ordinary numbers.
func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "n/a", true
	case math.IsInf(v, 1):
		return "∞", true
	case math.IsInf(v, -1):
		return "-∞", true
	}
	return "", false
}

// FormatMoney formats a currency amount with two decimals and comma grouping.
// e.g., 1234.5 -> "$1,234.50", -20 -> "-$20.00"
func FormatMoney(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}

	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, FormatNumber(whole.IntPart()), cents)
}

// FormatPercent formats a percentage value (not a ratio) with one decimal.
// e.g., 112.5 -> "112.5%"
func FormatPercent(p float64) string {
	if s, ok := nonFinite(p); ok {
		return s
	}
	return fmt.Sprintf("%.1f%%", p)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDate renders an expense date as "Jan 2, 2006". Unparseable dates are
// returned unchanged.
func FormatDate(s string) string {
	t, ok := analytics.ParseDate(s, time.Local)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// ParseAmount parses a user-entered amount such as "12.50", "$1,200" or
// "1200". The result is rounded to cents. Negative amounts are rejected.
func ParseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	return d.Round(2).InexactFloat64(), nil
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// ParseTags splits a comma-separated tag list, dropping blanks.
func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
