package models

import "strings"

// SanitizeKeySegment escapes the ':' delimiter so a crafted identifier such
// as "1.2.3.4:auth" cannot address a neighbouring bucket. Empty identifiers
// collapse to "unknown".
func SanitizeKeySegment(s string) string {
	if s == "" {
		return "unknown"
	}
	return strings.ReplaceAll(s, ":", "_")
}
