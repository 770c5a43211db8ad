package middlewares

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

const (
	LoginPage        = "/login"
	HeaderPagePath   = "X-Page-Path"
	HeaderAdminToken = "X-Admin-Token"

	msgLoginRequired = "로그인이 필요합니다."
)

// AuthPages never trigger the login redirect.
var AuthPages = []string{"/login", "/register", "/forgot-id", "/forgot-password"}

// RequireLogin rejects requests whose session is not logged in.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := GetSession(c)
			if err != nil || !sess.LoggedIn {
				return redirectToLogin(c, msgLoginRequired)
			}
			return next(c)
		}
	}
}

// UnauthorizedRedirect turns an upstream 401 into a redirect to the login
// page, unless the browser is already on one of the auth pages.
func UnauthorizedRedirect(authPages []string, log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil || !errors.Is(err, apperrors.ErrUnauthorized) {
				return err
			}

			page := CurrentPage(c)
			if IsAuthPage(page, authPages) || IsAuthPage(c.Request().URL.Path, authPages) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
			}

			if sess, sessErr := GetSession(c); sessErr == nil {
				sess.ClearAuth()
			}
			log.WithFields(logrus.Fields{"path": c.Request().URL.Path, "page": page}).Info("Upstream session expired, redirecting to login")
			return redirectToLogin(c, err.Error())
		}
	}
}

// CurrentPage is the page the browser is on: the X-Page-Path header, else the
// Referer path, else the request path.
func CurrentPage(c echo.Context) string {
	req := c.Request()
	if p := req.Header.Get(HeaderPagePath); p != "" {
		return p
	}
	if ref := req.Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return req.URL.Path
}

func IsAuthPage(page string, authPages []string) bool {
	for _, p := range authPages {
		if page == p || strings.HasPrefix(page, p+"/") {
			return true
		}
	}
	return false
}

func wantsHTML(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMETextHTML) && !strings.HasPrefix(c.Request().URL.Path, "/api/")
}

func redirectToLogin(c echo.Context, message string) error {
	if wantsHTML(c) {
		return c.Redirect(http.StatusFound, LoginPage)
	}
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:    message,
		Code:     "UNAUTHORIZED",
		Redirect: LoginPage,
	})
}

// RequireAdminToken guards operational endpoints. An empty token disables them.
func RequireAdminToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not Found"})
			}

			given := c.Request().Header.Get(HeaderAdminToken)
			if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
				return c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "Access denied"})
			}
			return next(c)
		}
	}
}
