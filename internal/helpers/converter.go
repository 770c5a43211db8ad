package helpers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

// QueryInt reads an integer query parameter, falling back to def when absent.
func QueryInt(c echo.Context, key string, def int) (int, error) {
	val := strings.TrimSpace(c.QueryParam(key))
	if val == "" {
		return def, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.ErrInvalidRequestPayload
	}
	return n, nil
}

// QueryOptionalInt is QueryInt for filters where "absent" differs from zero.
func QueryOptionalInt(c echo.Context, key string) (*int, error) {
	val := strings.TrimSpace(c.QueryParam(key))
	if val == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return nil, errors.ErrInvalidRequestPayload
	}
	return &n, nil
}

func SetIfNotEmpty(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}

func SetIntIfNotNil(q url.Values, key string, val *int) {
	if val != nil {
		q.Set(key, strconv.Itoa(*val))
	}
}

func IntPtr(n int) *int {
	return &n
}
