package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/flows"
	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/services"
)

type RegistrationHandler struct {
	RegistrationSvc services.RegistrationService
	log             *logrus.Logger
}

func NewRegistrationHandler(registrationSvc services.RegistrationService, log *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		RegistrationSvc: registrationSvc,
		log:             log,
	}
}

func (h *RegistrationHandler) State() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, h.RegistrationSvc.State(sess))
	}
}

func (h *RegistrationHandler) ResetState() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		h.RegistrationSvc.Reset(sess)
		return respondSuccess(c, http.StatusOK, MsgRetrieved, h.RegistrationSvc.State(sess))
	}
}

func (h *RegistrationHandler) CheckLoginID() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.LoginIDCheckReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		reg, err := h.RegistrationSvc.CheckLoginID(c.Request().Context(), sess, req.LoginID)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, reg)
	}
}

func (h *RegistrationHandler) CheckDuplicate() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.DuplicateCheckReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		res, err := h.RegistrationSvc.CheckDuplicate(c.Request().Context(), sess, req)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, res.Message, res)
	}
}

// CheckPassword scores a password as the user types. Nothing is stored.
func (h *RegistrationHandler) CheckPassword() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.PasswordCheckReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		res := models.PasswordCheckRes{
			Validation: flows.ValidatePassword(req.Password),
			Strength:   flows.GetPasswordStrength(req.Password),
		}
		if req.ConfirmPassword != "" {
			confirm := flows.ValidatePasswordConfirm(req.Password, req.ConfirmPassword)
			res.Confirm = &confirm
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, res)
	}
}

func (h *RegistrationHandler) SendCode() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.EmailReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		res, err := h.RegistrationSvc.SendCode(c.Request().Context(), sess, req.Email)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgCodeSent, res)
	}
}

func (h *RegistrationHandler) VerifyCode() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.EmailCodeReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		res, err := h.RegistrationSvc.VerifyCode(c.Request().Context(), sess, req.Code)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgEmailVerified, res)
	}
}

func (h *RegistrationHandler) Submit() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.RegisterReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		res, err := h.RegistrationSvc.Submit(c.Request().Context(), sess, req)
		if err != nil {
			return handleError(c, h.log, err)
		}

		h.log.WithField("login_id", res.LoginID).Info("User registered")
		return respondSuccess(c, http.StatusCreated, MsgRegistered, models.RegisterDoneRes{
			RegisterRes: *res,
			Redirect:    services.LoginPath,
		})
	}
}
