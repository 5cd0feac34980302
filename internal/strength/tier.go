package strength

import "fmt"

// Tier is a discrete password quality level. Tiers are totally ordered:
// TierNone < TierWeak < TierMedium < TierStrong.
type Tier int

const (
	TierNone Tier = iota
	TierWeak
	TierMedium
	TierStrong
)

var tierNames = [...]string{
	TierNone:   "",
	TierWeak:   "Weak",
	TierMedium: "Medium",
	TierStrong: "Strong",
}

// String returns the label shown under the strength meter. TierNone has no label.
func (t Tier) String() string {
	if t < TierNone || t > TierStrong {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

// IsValid reports whether t is one of the four defined tiers.
func (t Tier) IsValid() bool {
	return t >= TierNone && t <= TierStrong
}

func (t Tier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTier is the inverse of Tier.String.
func ParseTier(s string) (Tier, error) {
	for i, name := range tierNames {
		if name == s {
			return Tier(i), nil
		}
	}
	return TierNone, fmt.Errorf("unknown tier %q", s)
}
