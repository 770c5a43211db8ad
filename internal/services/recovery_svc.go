package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/flows"
	"github.com/chanjin5212/myfarm-storefront/internal/messaging"
	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

// RecoveryService drives the find-id and find-password forms, plus the
// emailed-token password reset.
type RecoveryService interface {
	FindIDState(sess *models.Session) *flows.FindID
	SendFindIDCode(ctx context.Context, sess *models.Session, email string) (*models.SendVerificationRes, error)
	VerifyFindID(ctx context.Context, sess *models.Session, code string) (*models.FindIDRes, error)
	ResetFindID(sess *models.Session)

	FindPasswordState(sess *models.Session) *flows.FindPassword
	CheckCredentials(ctx context.Context, sess *models.Session, email, loginID string) (*models.SendVerificationRes, error)
	VerifyFindPassword(ctx context.Context, sess *models.Session, code string) error
	ResetPassword(ctx context.Context, sess *models.Session, req models.NewPasswordReq) (*models.ResetPasswordRes, error)
	ResetFindPassword(sess *models.Session)

	RequestPasswordReset(ctx context.Context, req models.ForgotPasswordReq) error
	ResetPasswordWithToken(ctx context.Context, req models.TokenResetPasswordReq) error
}

type recoveryServiceImpl struct {
	api       apiclient.Doer
	publisher messaging.ActivityPublisher
	validator *validator.Validate
	log       *logrus.Logger
}

func NewRecoveryService(api apiclient.Doer, publisher messaging.ActivityPublisher, validator *validator.Validate, log *logrus.Logger) RecoveryService {
	return &recoveryServiceImpl{
		api:       api,
		publisher: publisher,
		validator: validator,
		log:       log,
	}
}

func (s *recoveryServiceImpl) FindIDState(sess *models.Session) *flows.FindID {
	return sess.FindIDFlow()
}

func (s *recoveryServiceImpl) SendFindIDCode(ctx context.Context, sess *models.Session, email string) (*models.SendVerificationRes, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}

	flow := sess.FindIDFlow()
	if step := flow.Step; step != "" && step != flows.FindIDStepEmail && step != flows.FindIDStepVerification {
		return nil, apperrors.ErrInvalidFlowStep
	}

	res, err := sendVerificationCode(ctx, s.api, sess, email, models.VerificationFindID)
	if err != nil {
		s.log.WithFields(logrus.Fields{"email": email, "error": err}).Warn("Failed to send find-id code")
		return nil, apperrors.Wrap(apperrors.ErrSendVerificationFailed, err)
	}

	if err := flow.CodeSent(email); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *recoveryServiceImpl) VerifyFindID(ctx context.Context, sess *models.Session, code string) (*models.FindIDRes, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.ErrCodeRequired
	}

	flow := sess.FindIDFlow()
	if err := flow.CanVerify(); err != nil {
		return nil, err
	}

	if _, err := verifyEmailCode(ctx, s.api, sess, flow.Email, code); err != nil {
		return nil, err
	}

	var res models.FindIDRes
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/users/v1/find-id",
		Body:   models.FindIDReq{Email: flow.Email},
	}, &res)
	if err != nil {
		s.log.WithFields(logrus.Fields{"email": flow.Email, "error": err}).Warn("Find id failed")
		return nil, apperrors.Wrap(apperrors.ErrLoginIDNotFound, err)
	}
	if res.LoginID == "" {
		return nil, apperrors.ErrLoginIDNotFound
	}

	if err := flow.Found(res.LoginID); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *recoveryServiceImpl) ResetFindID(sess *models.Session) {
	sess.FindIDFlow().Reset()
}

func (s *recoveryServiceImpl) FindPasswordState(sess *models.Session) *flows.FindPassword {
	return sess.FindPasswordFlow()
}

// CheckCredentials confirms the email and login id belong together, then
// sends the verification code.
func (s *recoveryServiceImpl) CheckCredentials(ctx context.Context, sess *models.Session, email, loginID string) (*models.SendVerificationRes, error) {
	email = strings.TrimSpace(email)
	loginID = strings.TrimSpace(loginID)
	if email == "" || loginID == "" {
		return nil, apperrors.ErrCredentialsRequired
	}

	flow := sess.FindPasswordFlow()
	if step := flow.Step; step != "" && step != flows.FindPasswordStepCredentials && step != flows.FindPasswordStepVerification {
		return nil, apperrors.ErrInvalidFlowStep
	}

	var check models.FindPasswordRes
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/users/v1/find-password",
		Body:   models.FindPasswordReq{Email: email, LoginID: loginID},
	}, &check)
	if err != nil {
		s.log.WithFields(logrus.Fields{"login_id": loginID, "error": err}).Warn("Find password check failed")
		return nil, apperrors.Wrap(apperrors.ErrFindPasswordFailed, err)
	}
	if !check.Available {
		return nil, apperrors.ErrCredentialsMismatch
	}

	res, err := sendVerificationCode(ctx, s.api, sess, email, models.VerificationFindPassword)
	if err != nil {
		s.log.WithFields(logrus.Fields{"email": email, "error": err}).Warn("Failed to send find-password code")
		return nil, apperrors.Wrap(apperrors.ErrSendVerificationFailed, err)
	}

	if err := flow.CodeSent(email, loginID); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *recoveryServiceImpl) VerifyFindPassword(ctx context.Context, sess *models.Session, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return apperrors.ErrCodeRequired
	}

	flow := sess.FindPasswordFlow()
	if err := flow.CanVerify(); err != nil {
		return err
	}

	if _, err := verifyEmailCode(ctx, s.api, sess, flow.Email, code); err != nil {
		return err
	}

	return flow.Verified()
}

func (s *recoveryServiceImpl) ResetPassword(ctx context.Context, sess *models.Session, req models.NewPasswordReq) (*models.ResetPasswordRes, error) {
	flow := sess.FindPasswordFlow()
	if err := flow.CanReset(); err != nil {
		return nil, err
	}

	if !flows.ValidatePassword(req.NewPassword).IsValid {
		return nil, apperrors.ErrPasswordPolicy
	}
	if !flows.ValidatePasswordConfirm(req.NewPassword, req.ConfirmPassword).IsValid {
		return nil, apperrors.ErrPasswordConfirmation
	}

	var res models.ResetPasswordRes
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/users/v1/reset-password",
		Body: models.ResetPasswordReq{
			Email:       flow.Email,
			LoginID:     flow.LoginID,
			NewPassword: req.NewPassword,
		},
	}, &res)
	if err != nil {
		s.log.WithFields(logrus.Fields{"login_id": flow.LoginID, "error": err}).Warn("Password reset failed")
		return nil, apperrors.Wrap(apperrors.ErrPasswordResetFailed, err)
	}
	if !res.Success {
		return nil, apperrors.ErrPasswordResetFailed
	}

	publishActivity(ctx, s.publisher, s.log, messaging.ActivityEvent{
		Type:    messaging.ActivityPasswordReset,
		LoginID: flow.LoginID,
		Email:   flow.Email,
	})

	if err := flow.Completed(); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *recoveryServiceImpl) ResetFindPassword(sess *models.Session) {
	sess.FindPasswordFlow().Reset()
}

func (s *recoveryServiceImpl) RequestPasswordReset(ctx context.Context, req models.ForgotPasswordReq) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	return callUpstream(ctx, s.api, nil, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/users/v1/forgot-password",
		Body:   req,
	}, nil)
}

func (s *recoveryServiceImpl) ResetPasswordWithToken(ctx context.Context, req models.TokenResetPasswordReq) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	err := callUpstream(ctx, s.api, nil, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/users/v1/reset-password",
		Body:   models.UpstreamTokenResetPasswordReq{Token: req.Token, NewPassword: req.NewPassword},
	}, nil)
	if err != nil {
		return err
	}

	publishActivity(ctx, s.publisher, s.log, messaging.ActivityEvent{Type: messaging.ActivityPasswordReset})
	return nil
}
