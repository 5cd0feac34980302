// Package form validates the onboarding forms with an explicit, closed rule
// table per field: required, minimum length and pattern.
package form

import (
	"regexp"
	"unicode/utf16"
)

// notSpaceOrAt is [^\s@] with \s spelled out as the ECMAScript whitespace
// set, which is wider than RE2's ASCII-only \s.
const notSpaceOrAt = `[^\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}@]`

// EmailPattern is the loose shape check the forms apply to e-mail addresses:
// something@something.something with no whitespace or extra '@'.
var EmailPattern = regexp.MustCompile(`^` + notSpaceOrAt + `+@` + notSpaceOrAt + `+\.` + notSpaceOrAt + `+$`)

// Rule lists the checks that apply to one field. A zero Rule accepts
// anything. Messages are shown to the user verbatim.
type Rule struct {
	Required        bool
	RequiredMessage string

	// MinLength is counted in UTF-16 code units, as browsers count input
	// length; 0 disables the check.
	MinLength        int
	MinLengthMessage string

	Pattern        *regexp.Regexp
	PatternMessage string
}

// Check runs the rule against value and returns the first failing message.
// Order is required, then minimum length, then pattern. An empty value that
// is not required passes.
func (r Rule) Check(value string) (string, bool) {
	if value == "" {
		if r.Required {
			return r.RequiredMessage, false
		}
		return "", true
	}
	if r.MinLength > 0 && length(value) < r.MinLength {
		return r.MinLengthMessage, false
	}
	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		return r.PatternMessage, false
	}
	return "", true
}

// Field binds a rule to a form field name.
type Field struct {
	Name string
	Rule Rule
}

// Schema is an ordered set of field rules.
type Schema []Field

// FieldErrors maps field names to the message for their first failed check.
type FieldErrors map[string]string

// Validate checks values against every field of the schema. Fields absent
// from values are treated as empty.
func (s Schema) Validate(values map[string]string) FieldErrors {
	errs := FieldErrors{}
	for _, f := range s {
		if msg, ok := f.Rule.Check(values[f.Name]); !ok {
			errs[f.Name] = msg
		}
	}
	return errs
}

// length counts s in UTF-16 code units. Characters outside the Basic
// Multilingual Plane count twice; invalid UTF-8 counts once per byte.
func length(s string) int {
	n := 0
	for _, r := range s {
		if u := utf16.RuneLen(r); u > 0 {
			n += u
		} else {
			n++
		}
	}
	return n
}
