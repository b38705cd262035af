package services

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatUSD formats an amount as US dollars with comma thousands grouping
// and exactly 2 decimal places, e.g. $1,234,567.89.
func FormatUSD(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := "$" + groupThousands(parts[0], ",") + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatBs formats an amount as Venezuelan bolívars, which group with dots
// and use a comma decimal separator, e.g. Bs 1.234.567,89.
func FormatBs(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := "Bs " + groupThousands(parts[0], ".") + "," + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatQty renders a quantity without trailing zeros (10, 2.5, 0.25).
func FormatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}

// FormatRate renders an exchange rate with 2 decimal places and no
// currency symbol.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate)
}

// groupThousands inserts sep between every group of 3 digits, counting
// from the right.
func groupThousands(s, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + sep + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + sep + result
}
