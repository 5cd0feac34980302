package models

import "onboard/internal/strength"

type SignUpResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	AccountID    string        `json:"account_id,omitempty"`
	PasswordTier strength.Tier `json:"password_tier"`
}

type SignInResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
