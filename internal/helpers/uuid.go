package helpers

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

// GenerateNewID is used for session ids and event ids.
func GenerateNewID() uuid.UUID {
	return uuid.New()
}

func IsValidUUID(u string) bool {
	_, err := uuid.Parse(u)
	return err == nil
}

// GetFromPathParam returns a non-empty path parameter. Upstream ids are opaque
// strings, so no UUID check is done here.
func GetFromPathParam(c echo.Context, key string) (string, error) {
	val := c.Param(key)
	if val == "" {
		return "", errors.ErrInvalidRequestPayload
	}

	return val, nil
}
