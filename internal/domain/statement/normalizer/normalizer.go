// Package normalizer parses raw statement cells into typed values, resolving
// the locale ambiguity of Vietnamese bank statements: VND carries no fractional
// unit, so "." and "," are thousands separators unless a value has a clear
// 1-2 digit decimal tail. Every function here is total; malformed input
// degrades to a safe default instead of an error.
package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// Characters that may appear in a numeric amount after cleaning.
	amountJunk = regexp.MustCompile(`[^\d.,\-]`)
	// One "." or "," followed by a 1-2 digit decimal tail, e.g. "123.45" or "123,4".
	decimalTail = regexp.MustCompile(`^[0-9,.]*[.,][0-9]{1,2}$`)
	// Leading D/M/Y groups with "/" or "-" separators; trailing text is allowed.
	datePrefix = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})`)

	separatorStrip = strings.NewReplacer(".", "", ",", "")
)

// Amount parses a statement amount. Empty or unparseable input yields 0.
// A value with exactly one separator and a 1-2 digit tail is treated as a
// decimal (refund-style negatives keep their sign); anything else strips all
// separators and parses as an integer amount.
func Amount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(amountJunk.ReplaceAllString(s, ""), "-")
	if s == "" {
		return 0
	}
	if decimalTail.MatchString(s) && strings.Count(s, ".")+strings.Count(s, ",") == 1 {
		if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err == nil {
			v, _ := d.Float64()
			if negative {
				return -v
			}
			return v
		}
	}
	d, err := decimal.NewFromString(separatorStrip.Replace(s))
	if err != nil {
		return 0
	}
	v, _ := d.Float64()
	if negative {
		return -v
	}
	return v
}

// fallbackLayouts are tried in order when a value does not match the
// D/M/Y prefix pattern.
var fallbackLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// Date parses a calendar date. When the value matches D{1,2}[/-]M{1,2}[/-]Y{2,4}
// the first two groups are read as (day, month) if dayFirst, else (month, day);
// two-digit years are 2000-based. Invalid calendar values and unparseable input
// return ok=false, never an error.
func Date(raw string, dayFirst bool) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if m := datePrefix.FindStringSubmatch(s); m != nil {
		g1, _ := strconv.Atoi(m[1])
		g2, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		day, month := g1, g2
		if !dayFirst {
			day, month = g2, g1
		}
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes out-of-range values (day 32 rolls into the next
		// month); a changed component means the input was not a real date.
		if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
			return time.Time{}, false
		}
		return t, true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateShaped reports whether a cell starts with a D/M/Y-looking value. Used to
// spot continuation pages whose first row is data rather than a header.
func DateShaped(raw string) bool {
	return datePrefix.MatchString(strings.TrimSpace(raw))
}

// Text normalizes a free-text cell: trimmed, with the pandas-style "nan" and
// "none" placeholders collapsed to the empty string.
func Text(raw string) string {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "nan", "none":
		return ""
	}
	return s
}
