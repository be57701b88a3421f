package output

import (
	"math"
	"strconv"
	"strings"
)

// SafeFloat coerces non-finite values to 0 so they never reach JSON encoding.
func SafeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// RoundFloat rounds a float to max 2 decimal places (percentages) after
// coercing non-finite values to 0.
func RoundFloat(f float64) float64 {
	f = SafeFloat(f)
	return math.Round(f*100) / 100
}

// FormatPercent formats a completeness percentage with no trailing zeros.
func FormatPercent(f float64) string {
	str := strconv.FormatFloat(RoundFloat(f), 'f', 2, 64)
	str = strings.TrimRight(str, "0")
	str = strings.TrimRight(str, ".")
	return str + "%"
}
