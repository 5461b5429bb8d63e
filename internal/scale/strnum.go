package scale

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// KPI display values and infra summary strings carry locale-formatted numbers
// with unit suffixes ("12,45,600 L", "₹ 1,240 Cr"). The transforms below
// locate the first numeric run, rescale it, and splice the reformatted number
// back while leaving all surrounding text untouched.

var (
	numberRun  = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
	integerRun = regexp.MustCompile(`[\d,]+`)
	trendRun   = regexp.MustCompile(`[\d.]+`)

	// Dashboard figures use Indian digit grouping (12,45,600).
	indian = message.NewPrinter(language.MustParse("en-IN"))
)

// FormatGrouped renders n with Indian digit grouping.
func FormatGrouped(n int64) string {
	return indian.Sprintf("%d", n)
}

// Embedded scales the first embedded number in s by factor with seeded
// jitter and re-renders it with the original grouping convention. Strings
// without a parseable number are returned unchanged.
func Embedded(s string, factor float64, seed int) string {
	m := numberRun.FindString(s)
	if m == "" {
		return s
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return s
	}
	return strings.Replace(s, m, FormatGrouped(ScaleFloat(f, factor, seed)), 1)
}

// EmbeddedInt is Embedded restricted to integer runs, used for summary
// strings that never carry decimals.
func EmbeddedInt(s string, factor float64, seed int) string {
	m := integerRun.FindString(s)
	if m == "" {
		return s
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
	if err != nil {
		return s
	}
	return strings.Replace(s, m, FormatGrouped(ScaleFloat(float64(n), factor, seed)), 1)
}

// Trend perturbs the first number in a trend percentage string by the
// independent [0.7, 1.3) factor and renders it with one decimal place.
// Trends deliberately do not follow the district scale factor.
func Trend(s string, seed int) string {
	m := trendRun.FindString(s)
	if m == "" {
		return s
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return s
	}
	return strings.Replace(s, m, strconv.FormatFloat(f*TrendFactor(seed), 'f', 1, 64), 1)
}
