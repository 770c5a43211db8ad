package models

import "github.com/chanjin5212/myfarm-storefront/internal/flows"

type RegisterRes struct {
	Email   string `json:"email"`
	LoginID string `json:"login_id"`
}

// MeResponse mirrors GET /users/v1/me.
type MeResponse struct {
	ID              string  `json:"id"`
	LoginID         string  `json:"login_id"`
	Email           string  `json:"email"`
	Name            string  `json:"name"`
	Nickname        string  `json:"nickname,omitempty"`
	PhoneNumber     string  `json:"phone_number"`
	Postcode        string  `json:"postcode,omitempty"`
	Address         string  `json:"address,omitempty"`
	DetailAddress   string  `json:"detail_address,omitempty"`
	AvatarURL       string  `json:"avatar_url,omitempty"`
	CreatedAt       string  `json:"created_at"`
	LastLogin       *string `json:"last_login,omitempty"`
	TermsAgreed     bool    `json:"terms_agreed"`
	MarketingAgreed bool    `json:"marketing_agreed"`
}

type ProfileRes struct {
	MeResponse
	DisplayName string `json:"display_name"`
}

type SessionRes struct {
	LoggedIn bool   `json:"logged_in"`
	LoginID  string `json:"login_id,omitempty"`
}

// RegisterDoneRes tells the browser where to go after sign-up.
type RegisterDoneRes struct {
	RegisterRes
	Redirect string `json:"redirect"`
}

type PasswordCheckRes struct {
	Validation flows.PasswordValidation `json:"validation"`
	Confirm    *flows.ConfirmValidation `json:"confirm,omitempty"`
	Strength   flows.PasswordStrength   `json:"strength"`
}
