package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/chanjin5212/myfarm-storefront/internal/delivery/http/middlewares"
	"github.com/chanjin5212/myfarm-storefront/internal/helpers"
	"github.com/chanjin5212/myfarm-storefront/internal/models"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

// ---- HELPERS -----

func getSession(c echo.Context) (*models.Session, error) {
	return middlewares.GetSession(c)
}

func getFromPathParam(c echo.Context, key string) (string, error) {
	return helpers.GetFromPathParam(c, key)
}

func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.ErrInvalidRequestPayload
	}
	return nil
}
