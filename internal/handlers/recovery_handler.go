package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/services"
)

// RecoveryHandler serves the find-id and find-password pages.
type RecoveryHandler struct {
	RecoverySvc services.RecoveryService
	log         *logrus.Logger
}

func NewRecoveryHandler(recoverySvc services.RecoveryService, log *logrus.Logger) *RecoveryHandler {
	return &RecoveryHandler{
		RecoverySvc: recoverySvc,
		log:         log,
	}
}

func sentMessage(res *models.SendVerificationRes) string {
	if res != nil && res.Message != "" {
		return res.Message
	}
	return MsgCodeSent
}

// ---- find id -----

func (h *RecoveryHandler) FindIDState() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, h.RecoverySvc.FindIDState(sess))
	}
}

func (h *RecoveryHandler) SendFindIDCode() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.EmailReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		res, err := h.RecoverySvc.SendFindIDCode(c.Request().Context(), sess, req.Email)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, sentMessage(res), h.RecoverySvc.FindIDState(sess))
	}
}

func (h *RecoveryHandler) VerifyFindID() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.EmailCodeReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		res, err := h.RecoverySvc.VerifyFindID(c.Request().Context(), sess, req.Code)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, res)
	}
}

func (h *RecoveryHandler) ResetFindID() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		h.RecoverySvc.ResetFindID(sess)
		return respondSuccess(c, http.StatusOK, MsgRetrieved, h.RecoverySvc.FindIDState(sess))
	}
}

// ---- find password -----

func (h *RecoveryHandler) FindPasswordState() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, h.RecoverySvc.FindPasswordState(sess))
	}
}

func (h *RecoveryHandler) CheckCredentials() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.CredentialsReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		res, err := h.RecoverySvc.CheckCredentials(c.Request().Context(), sess, req.Email, req.LoginID)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, sentMessage(res), h.RecoverySvc.FindPasswordState(sess))
	}
}

func (h *RecoveryHandler) VerifyFindPassword() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.EmailCodeReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		if err := h.RecoverySvc.VerifyFindPassword(c.Request().Context(), sess, req.Code); err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgEmailVerified, h.RecoverySvc.FindPasswordState(sess))
	}
}

func (h *RecoveryHandler) ResetPassword() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.NewPasswordReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		res, err := h.RecoverySvc.ResetPassword(c.Request().Context(), sess, req)
		if err != nil {
			return handleError(c, h.log, err)
		}

		msg := res.Message
		if msg == "" {
			msg = MsgPasswordReset
		}
		return respondSuccess(c, http.StatusOK, msg, h.RecoverySvc.FindPasswordState(sess))
	}
}

func (h *RecoveryHandler) ResetFindPassword() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		h.RecoverySvc.ResetFindPassword(sess)
		return respondSuccess(c, http.StatusOK, MsgRetrieved, h.RecoverySvc.FindPasswordState(sess))
	}
}

// ---- emailed reset link -----

func (h *RecoveryHandler) ForgotPassword() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ForgotPasswordReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		if err := h.RecoverySvc.RequestPasswordReset(c.Request().Context(), req); err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgResetMailSent, nil)
	}
}

func (h *RecoveryHandler) ResetPasswordWithToken() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.TokenResetPasswordReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		if err := h.RecoverySvc.ResetPasswordWithToken(c.Request().Context(), req); err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgPasswordReset, models.RedirectRes{Redirect: services.LoginPath})
	}
}
