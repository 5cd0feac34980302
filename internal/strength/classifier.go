// Package strength classifies passwords into feedback tiers for the sign-up
// form's strength meter. Classification is a pure function of the candidate
// string; it does not decide whether a password is acceptable.
package strength

import (
	"unicode"
	"unicode/utf16"
)

const (
	strongMinLength = 12
	mediumMinLength = 8
	weakMinLength   = 6

	mediumMinClasses = 2
)

// Classes records which character classes occur in a password.
type Classes struct {
	Upper  bool `json:"upper"`
	Lower  bool `json:"lower"`
	Digit  bool `json:"digit"`
	Symbol bool `json:"symbol"`
}

// Count returns the number of classes present.
func (c Classes) Count() int {
	n := 0
	for _, ok := range [...]bool{c.Upper, c.Lower, c.Digit, c.Symbol} {
		if ok {
			n++
		}
	}
	return n
}

// Classify maps a password to its tier. It is total: every string, including
// invalid UTF-8, yields exactly one tier.
//
// Precedence is strict: empty, then whitespace, then Strong, Medium and Weak.
// Inputs shorter than the Weak threshold still report Weak; only the empty
// string reports TierNone.
func Classify(password string) Tier {
	if password == "" {
		return TierNone
	}
	classes, length, spaced := scan(password)
	if spaced {
		return TierWeak
	}
	return tierFor(classes, length)
}

func tierFor(classes Classes, length int) Tier {
	switch {
	case length >= strongMinLength && classes.Count() == 4:
		return TierStrong
	case length >= mediumMinLength && classes.Count() >= mediumMinClasses:
		return TierMedium
	default:
		// Anything non-empty floors at Weak, including inputs shorter than
		// weakMinLength.
		return TierWeak
	}
}

// scan walks the password once, returning its classes, its length in UTF-16
// code units and whether it contains whitespace. Letters and digits are ASCII
// classes; every other rune counts as a symbol.
func scan(password string) (Classes, int, bool) {
	var c Classes
	spaced := false
	length := 0
	for _, r := range password {
		length += unitLen(r)
		switch {
		case isSpace(r):
			spaced = true
		case r >= 'A' && r <= 'Z':
			c.Upper = true
		case r >= 'a' && r <= 'z':
			c.Lower = true
		case r >= '0' && r <= '9':
			c.Digit = true
		default:
			c.Symbol = true
		}
	}
	return c, length, spaced
}

// unitLen is the UTF-16 length of r, the unit browsers report for input
// values. Invalid UTF-8 decodes to U+FFFD and counts once.
func unitLen(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// isSpace matches the ECMAScript \s set: Unicode White_Space minus U+0085,
// plus U+FEFF.
func isSpace(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\ufeff':
		return true
	}
	return unicode.IsSpace(r)
}
