package helpers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestQueryInt(t *testing.T) {
	cases := map[string]struct {
		target  string
		want    int
		wantErr error
	}{
		"absent uses default": {target: "/", want: 20},
		"parses value":        {target: "/?size=40", want: 40},
		"rejects garbage":     {target: "/?size=abc", wantErr: apperrors.ErrInvalidRequestPayload},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := QueryInt(newContext(tc.target), "size", 20)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQueryOptionalInt(t *testing.T) {
	got, err := QueryOptionalInt(newContext("/"), "min_price")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = QueryOptionalInt(newContext("/?min_price=0"), "min_price")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0, *got)
}

func TestSetHelpers(t *testing.T) {
	q := url.Values{}
	SetIfNotEmpty(q, "keyword", "")
	SetIfNotEmpty(q, "sortBy", "latest")
	SetIntIfNotNil(q, "minPrice", nil)
	SetIntIfNotNil(q, "maxPrice", IntPtr(5000))

	assert.Equal(t, "maxPrice=5000&sortBy=latest", q.Encode())
}

func TestNewValidatorPasswordTag(t *testing.T) {
	type form struct {
		Password string `validate:"password"`
	}

	v := NewValidator()
	assert.NoError(t, v.Struct(form{Password: "abcd1234"}))
	assert.Error(t, v.Struct(form{Password: "abcdefgh"}))
	assert.Error(t, v.Struct(form{Password: "Ab1!"}))
}
