package models

import "onboard/internal/strength"

// Credentials are forwarded to the authenticator on sign-in.
type Credentials struct {
	Email    string
	Password string
}

// Registration is forwarded to the authenticator on sign-up.
type Registration struct {
	FullName          string
	Email             string
	Password          string
	Country           string
	InvestmentGoals   string
	RiskTolerance     string
	PreferredIndustry string
}

// Result is the authenticator's verdict. A false Success is a business
// rejection; transport failures are returned as errors instead.
type Result struct {
	Success   bool
	Message   string
	AccountID string
}

// SignUpResult is returned to the client after a successful sign-up.
type SignUpResult struct {
	Message      string
	AccountID    string
	PasswordTier strength.Tier
}

// SignInResult is returned to the client after a successful sign-in.
type SignInResult struct {
	Message string
}
