// Package gazetteer holds the static city list used for place-of-birth
// autocomplete and the pure suggestion filter over it.
package gazetteer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const (
	// DefaultLimit is the maximum number of suggestions shown.
	DefaultLimit = 8
	// MinQueryRunes is the shortest input that produces suggestions.
	MinQueryRunes = 3
	// fallbackCountry is appended to unmatched input.
	fallbackCountry = "India"
)

// cities is fixed at build time; order is the suggestion order.
var cities = []string{
	"Mumbai, Maharashtra, India",
	"Delhi, Delhi, India",
	"Bangalore, Karnataka, India",
	"Hyderabad, Telangana, India",
	"Ahmedabad, Gujarat, India",
	"Chennai, Tamil Nadu, India",
	"Kolkata, West Bengal, India",
	"Pune, Maharashtra, India",
	"Jaipur, Rajasthan, India",
	"Lucknow, Uttar Pradesh, India",
	"Kanpur, Uttar Pradesh, India",
	"Nagpur, Maharashtra, India",
	"Indore, Madhya Pradesh, India",
	"Thane, Maharashtra, India",
	"Bhopal, Madhya Pradesh, India",
	"Visakhapatnam, Andhra Pradesh, India",
	"Pimpri-Chinchwad, Maharashtra, India",
	"Patna, Bihar, India",
	"Vadodara, Gujarat, India",
	"Ghaziabad, Uttar Pradesh, India",
	"Ludhiana, Punjab, India",
	"Agra, Uttar Pradesh, India",
	"Nashik, Maharashtra, India",
	"Faridabad, Haryana, India",
	"Meerut, Uttar Pradesh, India",
	"Rajkot, Gujarat, India",
	"Kalyan-Dombivali, Maharashtra, India",
	"Vasai-Virar, Maharashtra, India",
	"Varanasi, Uttar Pradesh, India",
	"Srinagar, Jammu and Kashmir, India",
	"Aurangabad, Maharashtra, India",
	"Dhanbad, Jharkhand, India",
	"Amritsar, Punjab, India",
	"Navi Mumbai, Maharashtra, India",
	"Allahabad, Uttar Pradesh, India",
	"Ranchi, Jharkhand, India",
	"Howrah, West Bengal, India",
	"Coimbatore, Tamil Nadu, India",
	"Jabalpur, Madhya Pradesh, India",
	"Gwalior, Madhya Pradesh, India",
}

// Cities returns a copy of the built-in gazetteer.
func Cities() []string {
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

// ShouldSuggest reports whether query is long enough to show suggestions.
func ShouldSuggest(query string) bool {
	return utf8.RuneCountInString(query) >= MinQueryRunes
}

// Suggest returns up to limit entries of gazetteer containing query,
// case-insensitively, in gazetteer order. When nothing matches it returns a
// single entry built from the raw query, so the result is never empty.
// A limit below one means no truncation.
func Suggest(query string, gazetteer []string, limit int) []string {
	fold := cases.Fold()
	needle := fold.String(query)

	matches := make([]string, 0, DefaultLimit)
	for _, city := range gazetteer {
		if limit > 0 && len(matches) == limit {
			break
		}
		if strings.Contains(fold.String(city), needle) {
			matches = append(matches, city)
		}
	}

	if len(matches) == 0 {
		return []string{Fallback(query)}
	}
	return matches
}

// Fallback synthesizes a suggestion for input the gazetteer does not know.
func Fallback(query string) string {
	return query + ", " + fallbackCountry
}
