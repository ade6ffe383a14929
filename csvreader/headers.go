package csvreader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// ValidateHeaders trims header names and fixes duplicates by appending a counter.
func ValidateHeaders(headers []string) []string {
	seen := make(map[string]int)
	result := make([]string, len(headers))

	for i, header := range headers {
		header = strings.TrimSpace(header)
		originalHeader := header
		counter := 1

		for {
			if _, exists := seen[header]; exists {
				header = fmt.Sprintf("%s_%d", originalHeader, counter)
				counter++
			} else {
				seen[header] = 1
				break
			}
		}

		result[i] = header
	}

	return result
}

var specialSymbols = regexp.MustCompile("[^a-z0-9]+")

// NormalizeHeader folds a header to a comparable ASCII key:
// "Ângulo Final (°)" and "angulo_final" normalize alike.
func NormalizeHeader(header string) string {
	s := strings.ToLower(unidecode.Unidecode(strings.TrimSpace(header)))
	s = specialSymbols.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// ResolveColumn finds the header a column selector refers to. An exact
// match wins; otherwise the normalized forms are compared.
func ResolveColumn(headers []string, name string) (string, bool) {
	for _, h := range headers {
		if h == name {
			return h, true
		}
	}
	key := NormalizeHeader(name)
	if key == "" {
		return "", false
	}
	for _, h := range headers {
		if NormalizeHeader(h) == key {
			return h, true
		}
	}
	return "", false
}
