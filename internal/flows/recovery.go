package flows

import (
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

type FindIDStep string

const (
	FindIDStepEmail        FindIDStep = "email"
	FindIDStepVerification FindIDStep = "verification"
	FindIDStepResult       FindIDStep = "result"
)

type FindID struct {
	Step    FindIDStep `json:"step"`
	Email   string     `json:"email"`
	LoginID string     `json:"login_id,omitempty"`
}

func NewFindID() *FindID {
	return &FindID{Step: FindIDStepEmail}
}

func (f *FindID) current() FindIDStep {
	if f.Step == "" {
		return FindIDStepEmail
	}
	return f.Step
}

// CodeSent moves to verification. Resending from the verification step is allowed.
func (f *FindID) CodeSent(email string) error {
	if s := f.current(); s != FindIDStepEmail && s != FindIDStepVerification {
		return apperrors.ErrInvalidFlowStep
	}
	f.Email = email
	f.LoginID = ""
	f.Step = FindIDStepVerification
	return nil
}

func (f *FindID) CanVerify() error {
	if f.current() != FindIDStepVerification {
		return apperrors.ErrInvalidFlowStep
	}
	return nil
}

func (f *FindID) Found(loginID string) error {
	if err := f.CanVerify(); err != nil {
		return err
	}
	f.LoginID = loginID
	f.Step = FindIDStepResult
	return nil
}

func (f *FindID) Reset() {
	*f = FindID{Step: FindIDStepEmail}
}

type FindPasswordStep string

const (
	FindPasswordStepCredentials  FindPasswordStep = "credentials"
	FindPasswordStepVerification FindPasswordStep = "verification"
	FindPasswordStepNewPassword  FindPasswordStep = "newPassword"
	FindPasswordStepResult       FindPasswordStep = "result"
)

type FindPassword struct {
	Step    FindPasswordStep `json:"step"`
	Email   string           `json:"email"`
	LoginID string           `json:"login_id"`
}

func NewFindPassword() *FindPassword {
	return &FindPassword{Step: FindPasswordStepCredentials}
}

func (f *FindPassword) current() FindPasswordStep {
	if f.Step == "" {
		return FindPasswordStepCredentials
	}
	return f.Step
}

func (f *FindPassword) CodeSent(email, loginID string) error {
	if s := f.current(); s != FindPasswordStepCredentials && s != FindPasswordStepVerification {
		return apperrors.ErrInvalidFlowStep
	}
	f.Email = email
	f.LoginID = loginID
	f.Step = FindPasswordStepVerification
	return nil
}

func (f *FindPassword) CanVerify() error {
	if f.current() != FindPasswordStepVerification {
		return apperrors.ErrInvalidFlowStep
	}
	return nil
}

func (f *FindPassword) Verified() error {
	if err := f.CanVerify(); err != nil {
		return err
	}
	f.Step = FindPasswordStepNewPassword
	return nil
}

func (f *FindPassword) CanReset() error {
	if f.current() != FindPasswordStepNewPassword {
		return apperrors.ErrInvalidFlowStep
	}
	return nil
}

func (f *FindPassword) Completed() error {
	if err := f.CanReset(); err != nil {
		return err
	}
	f.Step = FindPasswordStepResult
	return nil
}

func (f *FindPassword) Reset() {
	*f = FindPassword{Step: FindPasswordStepCredentials}
}
