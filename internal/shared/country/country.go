// Package country maps country names to flag emoji for search and
// trip listings.
package country

import "strings"

var flags = map[string]string{
	"japan":          "🇯🇵",
	"philippines":    "🇵🇭",
	"united states":  "🇺🇸",
	"usa":            "🇺🇸",
	"canada":         "🇨🇦",
	"france":         "🇫🇷",
	"italy":          "🇮🇹",
	"germany":        "🇩🇪",
	"spain":          "🇪🇸",
	"united kingdom": "🇬🇧",
	"uk":             "🇬🇧",
	"australia":      "🇦🇺",
	"thailand":       "🇹🇭",
	"singapore":      "🇸🇬",
	"malaysia":       "🇲🇾",
	"china":          "🇨🇳",
	"korea":          "🇰🇷",
	"south korea":    "🇰🇷",
	"north korea":    "🇰🇵",
	"vietnam":        "🇻🇳",
	"indonesia":      "🇮🇩",
	"india":          "🇮🇳",
}

// Flag returns the flag emoji for a country name, a globe for names it
// does not know, and an empty string for blank input. Lookup ignores
// case and surrounding whitespace.
func Flag(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return ""
	}
	if flag, ok := flags[key]; ok {
		return flag
	}
	return "🌍"
}
