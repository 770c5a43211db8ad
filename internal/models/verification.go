package models

type VerificationType string

const (
	VerificationRegistration VerificationType = "REGISTRATION"
	VerificationFindID       VerificationType = "FIND_ID"
	VerificationFindPassword VerificationType = "FIND_PASSWORD"
)

const (
	DuplicateLoginID = "login_id"
	DuplicateEmail   = "email"
	DuplicatePhone   = "phone"
)

type CheckDuplicateReq struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type CheckDuplicateRes struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

type SendVerificationReq struct {
	Email string           `json:"email"`
	Type  VerificationType `json:"type,omitempty"`
}

type SendVerificationRes struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type VerifyEmailReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyEmailRes struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

type FindIDReq struct {
	Email string `json:"email"`
}

type FindIDRes struct {
	LoginID   string `json:"login_id"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type FindPasswordReq struct {
	Email   string `json:"email"`
	LoginID string `json:"login_id"`
}

type FindPasswordRes struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

type ResetPasswordReq struct {
	Email       string `json:"email"`
	LoginID     string `json:"login_id"`
	NewPassword string `json:"new_password"`
}

type ResetPasswordRes struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
