package services

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/flows"
	"github.com/chanjin5212/myfarm-storefront/internal/messaging"
	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

type AuthService interface {
	Login(ctx context.Context, sess *models.Session, req models.LoginReq) error
	Logout(ctx context.Context, sess *models.Session)
	CheckSession(ctx context.Context, sess *models.Session) bool
	GetMe(ctx context.Context, sess *models.Session) (*models.MeResponse, error)
	UpdateProfile(ctx context.Context, sess *models.Session, req models.UpdateProfileReq) (*models.MeResponse, error)
	ChangePassword(ctx context.Context, sess *models.Session, req models.ChangePasswordReq) error
}

type authServiceImpl struct {
	api       apiclient.Doer
	publisher messaging.ActivityPublisher
	validator *validator.Validate
	log       *logrus.Logger
}

func NewAuthService(api apiclient.Doer, publisher messaging.ActivityPublisher, validator *validator.Validate, log *logrus.Logger) AuthService {
	return &authServiceImpl{
		api:       api,
		publisher: publisher,
		validator: validator,
		log:       log,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, sess *models.Session, req models.LoginReq) error {
	if err := s.validator.Struct(req); err != nil {
		return apperrors.Wrap(apperrors.ErrLoginFailed, apperrors.ErrInvalidRequestPayload)
	}

	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/users/v1/login",
		Body:   models.UpstreamLoginReq{LoginID: req.LoginID, Password: req.Password},
	}, nil)
	if err != nil {
		s.log.WithFields(logrus.Fields{"login_id": req.LoginID, "error": err}).Warn("Login failed")
		return apperrors.Wrap(apperrors.ErrLoginFailed, err)
	}

	sess.LoggedIn = true
	sess.LoginID = req.LoginID
	sess.Renew()

	event := messaging.ActivityEvent{
		Type:    messaging.ActivityUserLoggedIn,
		LoginID: req.LoginID,
	}
	if me, err := s.GetMe(ctx, sess); err != nil {
		s.log.WithFields(logrus.Fields{"login_id": req.LoginID, "error": err}).Warn("Failed to load profile after login")
	} else {
		event.Email = me.Email
	}

	publishActivity(ctx, s.publisher, s.log, event)
	return nil
}

// Logout always clears the local login, even if the backend call fails, and
// drops the whole session.
func (s *authServiceImpl) Logout(ctx context.Context, sess *models.Session) {
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/users/v1/logout",
	}, nil)
	if err != nil {
		s.log.WithError(err).Warn("Upstream logout failed, clearing local session anyway")
	}

	sess.ClearAuth()
	sess.Destroy()
}

func (s *authServiceImpl) CheckSession(ctx context.Context, sess *models.Session) bool {
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/users/v1/session",
	}, nil)
	if err != nil {
		if sess.LoggedIn {
			s.log.WithError(err).Info("Upstream session no longer valid")
		}
		sess.LoggedIn = false
		return false
	}

	sess.LoggedIn = true
	return true
}

func (s *authServiceImpl) GetMe(ctx context.Context, sess *models.Session) (*models.MeResponse, error) {
	var me models.MeResponse
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/users/v1/me",
	}, &me)
	if err != nil {
		return nil, err
	}

	if me.LoginID != "" {
		sess.LoginID = me.LoginID
	}
	return &me, nil
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, sess *models.Session, req models.UpdateProfileReq) (*models.MeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	var updated models.MeResponse
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPut,
		Path:   "/users/v1/profile",
		Body:   req,
	}, &updated)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, sess *models.Session, req models.ChangePasswordReq) error {
	if !flows.ValidatePassword(req.NewPassword).IsValid {
		return apperrors.ErrPasswordPolicy
	}
	if !flows.ValidatePasswordConfirm(req.NewPassword, req.ConfirmPassword).IsValid {
		return apperrors.ErrPasswordConfirmation
	}
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	return callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPut,
		Path:   "/users/v1/change-password",
		Body: models.UpstreamChangePasswordReq{
			CurrentPassword: req.CurrentPassword,
			NewPassword:     req.NewPassword,
			ConfirmPassword: req.ConfirmPassword,
		},
	}, nil)
}
