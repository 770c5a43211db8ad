package flows

import (
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

type LoginIDStatus string

const (
	LoginIDIdle        LoginIDStatus = "idle"
	LoginIDAvailable   LoginIDStatus = "available"
	LoginIDUnavailable LoginIDStatus = "unavailable"
)

// Registration tracks the parts of the sign-up form that need a server round
// trip before submit: the login id duplicate check and the email verification.
type Registration struct {
	LoginID        string        `json:"login_id"`
	LoginIDStatus  LoginIDStatus `json:"login_id_status"`
	LoginIDMessage string        `json:"login_id_message,omitempty"`
	Email          string        `json:"email"`
	CodeSent       bool          `json:"code_sent"`
	EmailVerified  bool          `json:"email_verified"`
}

type RegistrationForm struct {
	LoginID         string
	Email           string
	Password        string
	ConfirmPassword string
	AgreeTerms      bool
	AgreePrivacy    bool
}

func NewRegistration() *Registration {
	return &Registration{LoginIDStatus: LoginIDIdle}
}

// SetLoginID resets the duplicate check when the login id changes.
func (r *Registration) SetLoginID(loginID string) {
	if loginID == r.LoginID && r.LoginIDStatus != "" {
		return
	}
	r.LoginID = loginID
	r.LoginIDStatus = LoginIDIdle
	r.LoginIDMessage = ""
}

func (r *Registration) RecordLoginIDCheck(loginID string, available bool, message string) {
	r.SetLoginID(loginID)
	r.LoginIDMessage = message
	if available {
		r.LoginIDStatus = LoginIDAvailable
	} else {
		r.LoginIDStatus = LoginIDUnavailable
	}
}

func (r *Registration) RecordLoginIDCheckFailed(loginID string) {
	r.SetLoginID(loginID)
	r.LoginIDStatus = LoginIDIdle
	r.LoginIDMessage = apperrors.ErrDuplicateCheckFailed.Error()
}

// SetEmail drops any sent code and verification when the email changes.
func (r *Registration) SetEmail(email string) {
	if email == r.Email {
		return
	}
	r.Email = email
	r.CodeSent = false
	r.EmailVerified = false
}

func (r *Registration) MarkCodeSent(email string) {
	r.SetEmail(email)
	r.CodeSent = true
}

func (r *Registration) MarkEmailVerified(email string) error {
	if !r.CodeSent || email != r.Email {
		return apperrors.ErrInvalidFlowStep
	}
	r.EmailVerified = true
	return nil
}

// CheckSubmit runs the pre-submit checks in the order the form reports them.
func (r *Registration) CheckSubmit(form RegistrationForm) error {
	if r.LoginIDStatus != LoginIDAvailable || form.LoginID != r.LoginID {
		return apperrors.ErrLoginIDNotChecked
	}
	if !r.EmailVerified || form.Email != r.Email {
		return apperrors.ErrEmailNotVerified
	}
	if !ValidatePassword(form.Password).IsValid {
		return apperrors.ErrPasswordPolicy
	}
	if !ValidatePasswordConfirm(form.Password, form.ConfirmPassword).IsValid {
		return apperrors.ErrPasswordConfirmation
	}
	if !form.AgreeTerms || !form.AgreePrivacy {
		return apperrors.ErrTermsNotAgreed
	}
	return nil
}
