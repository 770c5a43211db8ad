package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/services"
)

type AuthHandler struct {
	AuthSvc services.AuthService
	log     *logrus.Logger
}

func NewAuthHandler(authSvc services.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		AuthSvc: authSvc,
		log:     log,
	}
}

func (h *AuthHandler) Login() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		h.log.Infof("Received login request from IP: %s", c.RealIP())

		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.LoginReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		if err := h.AuthSvc.Login(ctx, sess, req); err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgLoggedIn, toSessionRes(sess))
	}
}

func (h *AuthHandler) Logout() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		h.AuthSvc.Logout(c.Request().Context(), sess)
		return respondSuccess(c, http.StatusOK, MsgLoggedOut, toSessionRes(sess))
	}
}

// Session reports whether the backend still considers the browser logged in.
func (h *AuthHandler) Session() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		if len(sess.UpstreamCookies) == 0 && !sess.LoggedIn {
			return respondSuccess(c, http.StatusOK, MsgRetrieved, toSessionRes(sess))
		}

		h.AuthSvc.CheckSession(c.Request().Context(), sess)
		return respondSuccess(c, http.StatusOK, MsgRetrieved, toSessionRes(sess))
	}
}

func (h *AuthHandler) Me() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		me, err := h.AuthSvc.GetMe(c.Request().Context(), sess)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, toProfileRes(me))
	}
}

func (h *AuthHandler) UpdateProfile() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.UpdateProfileReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		me, err := h.AuthSvc.UpdateProfile(c.Request().Context(), sess, req)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgProfileUpdated, toProfileRes(me))
	}
}

func (h *AuthHandler) ChangePassword() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.ChangePasswordReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		if err := h.AuthSvc.ChangePassword(c.Request().Context(), sess, req); err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgPasswordChanged, nil)
	}
}

// ------- HELPERS -------

func toSessionRes(sess *models.Session) models.SessionRes {
	res := models.SessionRes{LoggedIn: sess.LoggedIn}
	if sess.LoggedIn {
		res.LoginID = sess.LoginID
	}
	return res
}

func toProfileRes(me *models.MeResponse) models.ProfileRes {
	display := me.Nickname
	if display == "" {
		display = me.Name
	}
	return models.ProfileRes{MeResponse: *me, DisplayName: display}
}
