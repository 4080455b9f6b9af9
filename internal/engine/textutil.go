package engine

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/anatolykoptev/go-kit/strutil"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Truncate returns at most n bytes of s without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if n < 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// TruncateAtWord truncates a string to maxLen runes at a word boundary.
func TruncateAtWord(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	return strutil.TruncateAtWord(strings.TrimSpace(s), maxLen)
}

// Round2 rounds v half-away-from-zero to 2 decimal places.
// Used only for display; callers keep full precision for further math.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatMoney renders v with thousands separators and exactly 2 decimals ("1,234.50").
func FormatMoney(v float64) string {
	return humanize.FormatFloat("#,###.##", Round2(v))
}

// FormatCount renders an integer count with thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}
