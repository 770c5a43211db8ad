package models

type LoginReq struct {
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpstreamLoginReq is the backend's camelCase login body.
type UpstreamLoginReq struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type RegisterReq struct {
	LoginID         string `json:"login_id" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name" validate:"required"`
	Nickname        string `json:"nickname"`
	Phone           string `json:"phone"`
	Postcode        string `json:"postcode"`
	Address         string `json:"address"`
	DetailAddress   string `json:"detail_address"`
	AgreeTerms      bool   `json:"agree_terms"`
	AgreePrivacy    bool   `json:"agree_privacy"`
	AgreeMarketing  bool   `json:"agree_marketing"`
}

// UpstreamRegisterReq drops optional fields the user left blank.
type UpstreamRegisterReq struct {
	Email           string `json:"email"`
	LoginID         string `json:"login_id"`
	Password        string `json:"password"`
	Name            string `json:"name"`
	Nickname        string `json:"nickname,omitempty"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Postcode        string `json:"postcode,omitempty"`
	Address         string `json:"address,omitempty"`
	DetailAddress   string `json:"detail_address,omitempty"`
	TermsAgreed     bool   `json:"terms_agreed"`
	MarketingAgreed bool   `json:"marketing_agreed"`
}

type UpdateProfileReq struct {
	Name          string `json:"name" validate:"required"`
	Nickname      string `json:"nickname"`
	PhoneNumber   string `json:"phone_number"`
	Postcode      string `json:"postcode"`
	Address       string `json:"address"`
	DetailAddress string `json:"detail_address"`
}

type ChangePasswordReq struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type UpstreamChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginIDCheckReq struct {
	LoginID string `json:"login_id" validate:"required"`
}

type DuplicateCheckReq struct {
	Type  string `json:"type" validate:"required,oneof=login_id email phone"`
	Value string `json:"value" validate:"required"`
}

type EmailReq struct {
	Email string `json:"email"`
}

type EmailCodeReq struct {
	Code string `json:"code"`
}

type CredentialsReq struct {
	Email   string `json:"email"`
	LoginID string `json:"login_id"`
}

type NewPasswordReq struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ForgotPasswordReq struct {
	Email string `json:"email" validate:"required,email"`
}

type TokenResetPasswordReq struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

type UpstreamTokenResetPasswordReq struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type PasswordCheckReq struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}
