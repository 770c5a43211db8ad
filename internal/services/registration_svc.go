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

const LoginPath = "/login"

type RegistrationService interface {
	State(sess *models.Session) *flows.Registration
	CheckLoginID(ctx context.Context, sess *models.Session, loginID string) (*flows.Registration, error)
	CheckDuplicate(ctx context.Context, sess *models.Session, req models.DuplicateCheckReq) (*models.CheckDuplicateRes, error)
	SendCode(ctx context.Context, sess *models.Session, email string) (*models.SendVerificationRes, error)
	VerifyCode(ctx context.Context, sess *models.Session, code string) (*models.VerifyEmailRes, error)
	Submit(ctx context.Context, sess *models.Session, req models.RegisterReq) (*models.RegisterRes, error)
	Reset(sess *models.Session)
}

type registrationServiceImpl struct {
	api       apiclient.Doer
	publisher messaging.ActivityPublisher
	validator *validator.Validate
	log       *logrus.Logger
}

func NewRegistrationService(api apiclient.Doer, publisher messaging.ActivityPublisher, validator *validator.Validate, log *logrus.Logger) RegistrationService {
	return &registrationServiceImpl{
		api:       api,
		publisher: publisher,
		validator: validator,
		log:       log,
	}
}

func (s *registrationServiceImpl) State(sess *models.Session) *flows.Registration {
	return sess.RegistrationFlow()
}

func (s *registrationServiceImpl) checkDuplicate(ctx context.Context, sess *models.Session, dupType, value string) (*models.CheckDuplicateRes, error) {
	var res models.CheckDuplicateRes
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/users/v1/check-duplicate",
		Body:   models.CheckDuplicateReq{Type: dupType, Value: value},
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CheckLoginID records the duplicate check on the form. A failed call leaves
// the status idle with an error message rather than failing the request.
func (s *registrationServiceImpl) CheckLoginID(ctx context.Context, sess *models.Session, loginID string) (*flows.Registration, error) {
	reg := sess.RegistrationFlow()
	loginID = strings.TrimSpace(loginID)
	if loginID == "" {
		reg.SetLoginID("")
		return reg, nil
	}

	res, err := s.checkDuplicate(ctx, sess, models.DuplicateLoginID, loginID)
	if err != nil {
		s.log.WithFields(logrus.Fields{"login_id": loginID, "error": err}).Warn("Login id duplicate check failed")
		reg.RecordLoginIDCheckFailed(loginID)
		return reg, nil
	}

	reg.RecordLoginIDCheck(loginID, res.Available, res.Message)
	return reg, nil
}

func (s *registrationServiceImpl) CheckDuplicate(ctx context.Context, sess *models.Session, req models.DuplicateCheckReq) (*models.CheckDuplicateRes, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if req.Type == models.DuplicateLoginID {
		reg, err := s.CheckLoginID(ctx, sess, req.Value)
		if err != nil {
			return nil, err
		}
		if reg.LoginIDStatus == flows.LoginIDIdle {
			return nil, apperrors.ErrDuplicateCheckFailed
		}
		return &models.CheckDuplicateRes{
			Available: reg.LoginIDStatus == flows.LoginIDAvailable,
			Message:   reg.LoginIDMessage,
		}, nil
	}

	res, err := s.checkDuplicate(ctx, sess, req.Type, req.Value)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDuplicateCheckFailed, err)
	}
	return res, nil
}

func (s *registrationServiceImpl) SendCode(ctx context.Context, sess *models.Session, email string) (*models.SendVerificationRes, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}

	res, err := sendVerificationCode(ctx, s.api, sess, email, models.VerificationRegistration)
	if err != nil {
		s.log.WithFields(logrus.Fields{"email": email, "error": err}).Warn("Failed to send registration code")
		return nil, apperrors.Wrap(apperrors.ErrSendVerificationFailed, err)
	}

	sess.RegistrationFlow().MarkCodeSent(email)
	return res, nil
}

func (s *registrationServiceImpl) VerifyCode(ctx context.Context, sess *models.Session, code string) (*models.VerifyEmailRes, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.ErrCodeRequired
	}

	reg := sess.RegistrationFlow()
	if !reg.CodeSent {
		return nil, apperrors.ErrInvalidFlowStep
	}

	res, err := verifyEmailCode(ctx, s.api, sess, reg.Email, code)
	if err != nil {
		return nil, err
	}

	if err := reg.MarkEmailVerified(reg.Email); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *registrationServiceImpl) Submit(ctx context.Context, sess *models.Session, req models.RegisterReq) (*models.RegisterRes, error) {
	reg := sess.RegistrationFlow()

	err := reg.CheckSubmit(flows.RegistrationForm{
		LoginID:         req.LoginID,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AgreeTerms:      req.AgreeTerms,
		AgreePrivacy:    req.AgreePrivacy,
	})
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	var res models.RegisterRes
	err = callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/users/v1/register",
		Body: models.UpstreamRegisterReq{
			Email:           req.Email,
			LoginID:         req.LoginID,
			Password:        req.Password,
			Name:            req.Name,
			Nickname:        req.Nickname,
			PhoneNumber:     req.Phone,
			Postcode:        req.Postcode,
			Address:         req.Address,
			DetailAddress:   req.DetailAddress,
			TermsAgreed:     req.AgreeTerms && req.AgreePrivacy,
			MarketingAgreed: req.AgreeMarketing,
		},
	}, &res)
	if err != nil {
		s.log.WithFields(logrus.Fields{"login_id": req.LoginID, "error": err}).Warn("Registration failed")
		return nil, apperrors.Wrap(apperrors.ErrRegisterFailed, err)
	}

	sess.Registration = nil

	publishActivity(ctx, s.publisher, s.log, messaging.ActivityEvent{
		Type:    messaging.ActivityUserRegistered,
		LoginID: res.LoginID,
		Email:   res.Email,
	})
	return &res, nil
}

func (s *registrationServiceImpl) Reset(sess *models.Session) {
	sess.Registration = flows.NewRegistration()
}

func sendVerificationCode(ctx context.Context, api apiclient.Doer, sess *models.Session, email string, kind models.VerificationType) (*models.SendVerificationRes, error) {
	var res models.SendVerificationRes
	err := callUpstream(ctx, api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/email-verifications/v1/send",
		Body:   models.SendVerificationReq{Email: email, Type: kind},
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Email == "" {
		res.Email = email
	}
	return &res, nil
}

// verifyEmailCode maps a call failure to ErrCodeMismatch and a negative
// answer to ErrVerificationFailed.
func verifyEmailCode(ctx context.Context, api apiclient.Doer, sess *models.Session, email, code string) (*models.VerifyEmailRes, error) {
	var res models.VerifyEmailRes
	err := callUpstream(ctx, api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/email-verifications/v1/verify",
		Body:   models.VerifyEmailReq{Email: email, Code: code},
	}, &res)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeMismatch, err)
	}
	if !res.Verified {
		return nil, apperrors.ErrVerificationFailed
	}
	return &res, nil
}
