package country

import "strings"

// DefaultFlagBaseURL serves 24x18 PNG flags keyed by lower-case ISO code.
const DefaultFlagBaseURL = "https://flagcdn.com/24x18"

// FlagResolver maps a country code to its flag image URL.
type FlagResolver struct {
	BaseURL string
}

// URL returns the flag image URL for code. The mapping is deterministic and
// does not check that code exists.
func (f FlagResolver) URL(code string) string {
	base := f.BaseURL
	if base == "" {
		base = DefaultFlagBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + strings.ToLower(strings.TrimSpace(code)) + ".png"
}

// FlagURL resolves code against DefaultFlagBaseURL.
func FlagURL(code string) string {
	return FlagResolver{}.URL(code)
}
