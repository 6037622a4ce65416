package leaderboard

import "github.com/dustin/go-humanize"

// FormatScore renders a total with thousands separators.
func FormatScore(total int64) string {
	return humanize.Comma(total)
}

var countryNames = map[string]string{
	"US":  "United States",
	"CN":  "China",
	"JP":  "Japan",
	"KR":  "South Korea",
	"TW":  "Taiwan",
	"HK":  "Hong Kong",
	"SG":  "Singapore",
	"GB":  "United Kingdom",
	"DE":  "Germany",
	"FR":  "France",
	"CA":  "Canada",
	"AU":  "Australia",
	"IN":  "India",
	"BR":  "Brazil",
	"MX":  "Mexico",
	"DEV": "Development",
}

var countryFlags = map[string]string{
	"US":  "🇺🇸",
	"CN":  "🇨🇳",
	"JP":  "🇯🇵",
	"KR":  "🇰🇷",
	"TW":  "🇹🇼",
	"HK":  "🇭🇰",
	"SG":  "🇸🇬",
	"GB":  "🇬🇧",
	"DE":  "🇩🇪",
	"FR":  "🇫🇷",
	"CA":  "🇨🇦",
	"AU":  "🇦🇺",
	"IN":  "🇮🇳",
	"BR":  "🇧🇷",
	"MX":  "🇲🇽",
	"DEV": "🏴",
}

// CountryName returns a display name, or the code itself when unknown.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}

// CountryFlag returns the flag emoji for a code, or a white flag.
func CountryFlag(code string) string {
	if flag, ok := countryFlags[code]; ok {
		return flag
	}
	return "🏳"
}
