package extract

import (
	"regexp"
	"strconv"
)

// numberPattern extracts the first decimal number from a progress cell,
// tolerating suffixes like "%" or surrounding text ("45% aprox").
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParsePercentage extracts the first decimal number from a raw progress
// value and clamps it to [0,100]. The second return is false when the
// value contains no number at all.
func ParsePercentage(value string) (float64, bool) {
	match := numberPattern.FindString(value)
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n, true
}
