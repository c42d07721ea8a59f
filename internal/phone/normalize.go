// Package phone converts free-form phone text into "+<digits>" form.
//
// The conversion is a heuristic tuned for a single default country, not a
// numbering-plan parser.
package phone

import (
	"regexp"
	"strings"
)

// DefaultCountryCode is used when no country code is configured.
const DefaultCountryCode = "91"

var canonical = regexp.MustCompile(`^\+\d{10,15}$`)

// IsCanonical reports whether s is "+" followed by 10 to 15 digits.
func IsCanonical(s string) bool {
	return canonical.MatchString(s)
}

// Normalize returns raw in international form using countryCode for local
// numbers. It returns an empty string when raw contains no digits.
func Normalize(raw, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	cleaned := strip(raw)
	if IsCanonical(cleaned) {
		return cleaned
	}

	digits := strings.TrimPrefix(cleaned, "+")
	digits = strings.TrimPrefix(digits, "0")
	if digits == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(digits, countryCode) && len(digits) >= len(countryCode)+10:
		return "+" + digits
	case len(digits) == 10:
		return "+" + countryCode + digits
	default:
		// Ambiguous length: keep the digits as they are.
		return "+" + digits
	}
}

// strip keeps digits and a single leading '+'.
func strip(raw string) string {
	raw = strings.TrimSpace(raw)

	var b strings.Builder
	b.Grow(len(raw))
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	return b.String()
}
