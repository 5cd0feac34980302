package strength

// Assessment is a classification plus the meter presentation the form
// renders for it.
type Assessment struct {
	Tier    Tier    `json:"tier"`
	Percent int     `json:"percent"`
	Color   string  `json:"color"`
	Classes Classes `json:"classes"`
	Length  int     `json:"length"`
}

// Assess classifies password and fills in the meter fields. Percent and
// Color depend on the tier alone.
func Assess(password string) Assessment {
	classes, length, _ := scan(password)
	tier := Classify(password)
	return Assessment{
		Tier:    tier,
		Percent: tier.Percent(),
		Color:   tier.Color(),
		Classes: classes,
		Length:  length,
	}
}

// Percent is the meter fill for t.
func (t Tier) Percent() int {
	switch t {
	case TierWeak:
		return 33
	case TierMedium:
		return 66
	case TierStrong:
		return 100
	default:
		return 0
	}
}

// Color is the meter colour token for t.
func (t Tier) Color() string {
	switch t {
	case TierWeak:
		return "red"
	case TierMedium:
		return "yellow"
	case TierStrong:
		return "green"
	default:
		return "gray"
	}
}
