package numeric

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Band is the per-currency plausibility range for parsed values.
// Values outside [Low, High) are rejected as obviously wrong magnitudes
// or mis-parsed concatenations
type Band struct {
	Low  float64
	High float64
}

func (b Band) Contains(v float64) bool {
	return v >= b.Low && v < b.High
}

// glyphReplacer maps Eastern Arabic digit glyphs and separator marks
// to their ASCII counterparts
var glyphReplacer = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٫", ".", // Arabic decimal separator
	"٬", ",", // Arabic thousands separator
)

var numberRegex = regexp.MustCompile(`-?\d(?:[\d.,]*\d)?`)

// Parse extracts the first plausible decimal number from loosely
// formatted text. Digit glyphs and decimal/thousands separators are
// normalized first, and the parsed value must fall inside the band.
// Parse is pure: same input, same output, no hidden state
func Parse(s string, b Band) (float64, bool) {
	s = glyphReplacer.Replace(strings.TrimSpace(s))

	raw := numberRegex.FindString(s)
	if raw == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(canonicalize(raw), 64)
	if err != nil {
		return 0, false
	}

	if !b.Contains(v) {
		return 0, false
	}

	return v, true
}

// canonicalize reduces a number-shaped substring to strconv form.
// When both '.' and ',' appear, the rightmost mark is the decimal
// separator and all others are thousands separators. A lone ',' is a
// decimal mark; repeated marks of one kind are thousands separators,
// except the last
func canonicalize(raw string) string {
	var (
		lastDot   = strings.LastIndex(raw, ".")
		lastComma = strings.LastIndex(raw, ",")
	)

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.Replace(raw, ",", ".", -1)
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	case lastComma >= 0:
		// Strip every comma but the last, which acts as the decimal mark
		raw = strings.ReplaceAll(raw[:lastComma], ",", "") + "." + raw[lastComma+1:]
	case strings.Count(raw, ".") > 1:
		// Multiple dots, only the last one is the decimal mark
		raw = strings.ReplaceAll(raw[:lastDot], ".", "") + raw[lastDot:]
	}

	return raw
}

// Round rounds the value to the given number of decimal places
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))

	return math.Round(v*pow) / pow
}
