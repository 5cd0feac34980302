package form

// SignUp is the submitted sign-up and personalisation form.
type SignUp struct {
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	Country           string `json:"country"`
	InvestmentGoals   string `json:"investmentGoals" validate:"omitempty,investment_goal"`
	RiskTolerance     string `json:"riskTolerance" validate:"omitempty,risk_tolerance"`
	PreferredIndustry string `json:"preferredIndustry" validate:"omitempty,preferred_industry"`
}

// Values flattens the form for schema validation.
func (f SignUp) Values() map[string]string {
	return map[string]string{
		FieldFullName:          f.FullName,
		FieldEmail:             f.Email,
		FieldPassword:          f.Password,
		FieldCountry:           f.Country,
		FieldInvestmentGoals:   f.InvestmentGoals,
		FieldRiskTolerance:     f.RiskTolerance,
		FieldPreferredIndustry: f.PreferredIndustry,
	}
}

// SignIn is the submitted sign-in form.
type SignIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Values flattens the form for schema validation.
func (f SignIn) Values() map[string]string {
	return map[string]string{
		FieldEmail:    f.Email,
		FieldPassword: f.Password,
	}
}
