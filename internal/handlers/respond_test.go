package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanjin5212/myfarm-storefront/internal/helpers"
	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

func TestHandleError(t *testing.T) {
	validate := helpers.NewValidator()
	weakPassword := validate.Struct(models.ChangePasswordReq{CurrentPassword: "old", NewPassword: "short", ConfirmPassword: "short"})
	badEmail := validate.Struct(models.ForgotPasswordReq{Email: "not-an-email"})

	cases := map[string]struct {
		err        error
		wantStatus int
		wantError  string
		wantCode   string
	}{
		"upstream not found keeps status and message": {
			err:        &apiclient.APIError{Message: "상품을 찾을 수 없습니다.", Code: "PRODUCT_NOT_FOUND", Status: http.StatusNotFound},
			wantStatus: http.StatusNotFound,
			wantError:  "상품을 찾을 수 없습니다.",
			wantCode:   "PRODUCT_NOT_FOUND",
		},
		"no response is a bad gateway": {
			err:        &apiclient.APIError{Message: "connection refused", Code: apiclient.CodeNetwork},
			wantStatus: http.StatusBadGateway,
			wantError:  "connection refused",
			wantCode:   apiclient.CodeNetwork,
		},
		"success false on 200 is a bad request": {
			err:        &apiclient.APIError{Message: "이미 사용중인 이메일입니다.", Status: http.StatusOK},
			wantStatus: http.StatusBadRequest,
			wantError:  "이미 사용중인 이메일입니다.",
		},
		"wrapped upstream error shows the public message": {
			err:        apperrors.Wrap(apperrors.ErrSendVerificationFailed, &apiclient.APIError{Message: "smtp down", Status: http.StatusServiceUnavailable}),
			wantStatus: http.StatusServiceUnavailable,
			wantError:  apperrors.ErrSendVerificationFailed.Error(),
		},
		"out of order step": {
			err:        apperrors.ErrInvalidFlowStep,
			wantStatus: http.StatusConflict,
			wantError:  MsgFlowStepConflict,
			wantCode:   codeInvalidFlowStep,
		},
		"password policy": {
			err:        weakPassword,
			wantStatus: http.StatusBadRequest,
			wantError:  apperrors.ErrPasswordPolicy.Error(),
			wantCode:   codeValidation,
		},
		"email format": {
			err:        badEmail,
			wantStatus: http.StatusBadRequest,
			wantError:  MsgInvalidEmail,
			wantCode:   codeValidation,
		},
		"form error": {
			err:        apperrors.ErrTermsNotAgreed,
			wantStatus: http.StatusBadRequest,
			wantError:  apperrors.ErrTermsNotAgreed.Error(),
		},
		"missing session": {
			err:        apperrors.ErrInvalidUserSession,
			wantStatus: http.StatusUnauthorized,
			wantError:  apperrors.ErrInvalidUserSession.Error(),
		},
		"unknown": {
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  apperrors.ErrInternalServerError.Error(),
			wantCode:   codeInternal,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			log, _ := test.NewNullLogger()
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/x", nil), rec)

			require.NoError(t, handleError(c, log, tc.err))
			assert.Equal(t, tc.wantStatus, rec.Code)

			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantError, body.Error)
			assert.Equal(t, tc.wantCode, body.Code)
		})
	}

	t.Run("unauthorized is left to the middleware", func(t *testing.T) {
		log, _ := test.NewNullLogger()
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/x", nil), rec)

		err := apperrors.Wrap(apperrors.ErrLoginFailed, &apiclient.APIError{Message: "bad credentials", Status: http.StatusUnauthorized})
		returned := handleError(c, log, err)

		assert.ErrorIs(t, returned, apperrors.ErrUnauthorized)
		assert.False(t, c.Response().Committed)
	})
}
