package sample

import (
	"strings"
	"unicode"
)

// ExtractNumbers reads a free text list of measurements. Values are
// separated by whitespace or semicolons; a comma inside a value is a
// decimal separator. Tokens that are not numbers are skipped.
func ExtractNumbers(text string) []float64 {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ';'
	})
	numbers := make([]float64, 0, len(fields))
	for _, field := range fields {
		if v, ok := ParseDecimal(field); ok {
			numbers = append(numbers, v)
		}
	}
	return numbers
}
