package sample

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseDecimal parses a measurement cell. The first comma is read as the
// decimal separator and trailing text after the number (units) is ignored.
// Only finite numbers are accepted.
func ParseDecimal(text string) (float64, bool) {
	s := strings.Replace(strings.TrimSpace(text), ",", ".", 1)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		m := leadingNumber.FindString(s)
		if m == "" {
			return 0, false
		}
		if v, err = strconv.ParseFloat(m, 64); err != nil {
			return 0, false
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
