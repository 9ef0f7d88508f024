// Package format holds the presentation helpers shared by the CLI views:
// funding math, currency and count formatting, and small string utilities.
package format

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// FundingPercentage reports progress toward the goal as a whole percentage,
// clamped to [0, 100]. A zero or negative goal reads as no progress.
func FundingPercentage(current, goal float64) int {
	if goal <= 0 {
		return 0
	}
	pct := current / goal * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(math.Round(pct))
}

// DaysLeft counts whole days until the deadline, rounding partial days up
// and never going negative.
func DaysLeft(end, now time.Time) int {
	diff := end.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// Currency renders an amount with the unit's symbol and locale grouping,
// e.g. "₹ 45,000.00".
func Currency(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.INR
	}
	return printer.Sprint(currency.Symbol(unit.Amount(amount)))
}

// Compact shortens large counts for display: 1200 -> "1.2K", 3400000 -> "3.4M".
func Compact(n int64) string {
	switch {
	case n >= 1_000_000:
		return trimCompact(float64(n)/1_000_000) + "M"
	case n >= 1_000:
		return trimCompact(float64(n)/1_000) + "K"
	default:
		return printer.Sprintf("%d", n)
	}
}

func trimCompact(v float64) string {
	s := printer.Sprintf("%.1f", math.Floor(v*10)/10)
	return strings.TrimSuffix(s, ".0")
}

// Truncate cuts a string to at most n runes, appending an ellipsis when it
// had to cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

// Initials derives up to two uppercase initials from a display name.
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	first := []rune(fields[0])
	out := strings.ToUpper(string(first[0]))
	if len(fields) > 1 {
		last := []rune(fields[len(fields)-1])
		out += strings.ToUpper(string(last[0]))
	}
	return out
}
