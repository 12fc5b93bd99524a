package utils

import (
	"fmt"
	"math"
	"strings"
)

// Round2 rounds an amount to 2 decimal places (cents). Internal pricing
// keeps full float precision; rounding happens only where an amount is
// split or displayed.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatAmount formats an amount with thousand separators and 2 decimals
// for receipt display. Example: 15000.5 -> "15.000,50".
func FormatAmount(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	if negative {
		integerPart = integerPart[1:]
	}

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	joined := strings.Join(result, ".") + "," + decimalPart
	if negative {
		return "-" + joined
	}
	return joined
}
