package form

// Field names shared by the sign-up and sign-in forms.
const (
	FieldFullName          = "fullName"
	FieldEmail             = "email"
	FieldPassword          = "password"
	FieldCountry           = "country"
	FieldInvestmentGoals   = "investmentGoals"
	FieldRiskTolerance     = "riskTolerance"
	FieldPreferredIndustry = "preferredIndustry"
)

// SignUpSchema is the rule table of the sign-up form.
var SignUpSchema = Schema{
	{Name: FieldFullName, Rule: Rule{
		Required:         true,
		RequiredMessage:  "Full Name is required",
		MinLength:        4,
		MinLengthMessage: "Full Name must be at least 4 characters",
	}},
	{Name: FieldEmail, Rule: Rule{
		Required:         true,
		RequiredMessage:  "Email is required",
		MinLength:        8,
		MinLengthMessage: "Email must be at least 8 characters",
		Pattern:          EmailPattern,
		PatternMessage:   "Enter a valid email address",
	}},
	{Name: FieldPassword, Rule: Rule{
		Required:         true,
		RequiredMessage:  "Password is required",
		MinLength:        6,
		MinLengthMessage: "Password must be at least 6 characters",
	}},
	{Name: FieldCountry, Rule: Rule{Required: true, RequiredMessage: "Please select country"}},
	{Name: FieldInvestmentGoals, Rule: Rule{Required: true, RequiredMessage: "Please select investment goals"}},
	{Name: FieldRiskTolerance, Rule: Rule{Required: true, RequiredMessage: "Please select risk tolerance"}},
	{Name: FieldPreferredIndustry, Rule: Rule{Required: true, RequiredMessage: "Please select preferred industry"}},
}

// SignInSchema is the rule table of the sign-in form.
var SignInSchema = Schema{
	{Name: FieldEmail, Rule: Rule{
		Required:        true,
		RequiredMessage: "Email is required",
		Pattern:         EmailPattern,
		PatternMessage:  "Enter a valid email",
	}},
	{Name: FieldPassword, Rule: Rule{
		Required:         true,
		RequiredMessage:  "Password is required",
		MinLength:        8,
		MinLengthMessage: "Password must be at least 8 characters",
	}},
}
