package form

import "slices"

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var (
	InvestmentGoals = []Option{
		{Value: "Growth", Label: "Growth"},
		{Value: "Income", Label: "Income"},
		{Value: "Balanced", Label: "Balanced"},
		{Value: "Conservative", Label: "Conservative"},
	}

	RiskToleranceOptions = []Option{
		{Value: "Low", Label: "Low"},
		{Value: "Medium", Label: "Medium"},
		{Value: "High", Label: "High"},
	}

	PreferredIndustries = []Option{
		{Value: "Technology", Label: "Technology"},
		{Value: "Healthcare", Label: "Healthcare"},
		{Value: "Finance", Label: "Finance"},
		{Value: "Energy", Label: "Energy"},
		{Value: "Consumer Goods", Label: "Consumer Goods"},
	}
)

// Defaults pre-fills a blank sign-up form.
var Defaults = SignUp{
	Country:           "BD",
	InvestmentGoals:   "Growth",
	RiskTolerance:     "Medium",
	PreferredIndustry: "Technology",
}

func hasOption(options []Option, value string) bool {
	return slices.ContainsFunc(options, func(o Option) bool { return o.Value == value })
}
