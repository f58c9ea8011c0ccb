package quality

import (
	"math"
	"strconv"
	"strings"
)

// formatInt renders n with thousands separators (96000 -> "96,000")
func formatInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// formatMoney renders v with separators and two decimals ("500,001.00").
// Values beyond int64 precision and infinities fall back to plain notation.
func formatMoney(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) || math.Abs(v) >= 1e15 {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	whole, frac := math.Modf(math.Abs(v))
	cents := strconv.FormatFloat(frac, 'f', 2, 64)
	if strings.HasPrefix(cents, "1") {
		// rounding carried into the integer part
		whole++
		cents = "0.00"
	}

	s := formatInt(int64(whole)) + cents[1:]
	if v < 0 {
		return "-" + s
	}
	return s
}

// formatAmount renders whole amounts without decimals, anything else as money
func formatAmount(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return formatInt(int64(v))
	}
	return formatMoney(v)
}

// formatFloat renders the shortest exact representation of v
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCount renders a row count the way status lines show it ("100,000")
func FormatCount(n int) string {
	return formatInt(int64(n))
}
