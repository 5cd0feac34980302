package country

import (
	"strings"

	dErrors "onboard/pkg/domain-errors"
)

// Record is one entry of the reference dataset.
type Record struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Validate enforces the dataset invariants for a single record: an
// upper-case two-letter code and a non-blank display name.
func (r Record) Validate() error {
	if !isCode(r.Code) {
		return dErrors.New(dErrors.CodeInvariantViolation, "country code must be two upper-case letters: "+r.Code)
	}
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "country name cannot be empty for "+r.Code)
	}
	return nil
}

// NormalizeCode upper-cases and trims a user-supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func isCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
