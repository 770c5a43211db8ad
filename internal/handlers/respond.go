package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

const (
	MsgLoggedIn        = "로그인되었습니다."
	MsgLoggedOut       = "로그아웃되었습니다."
	MsgProfileUpdated  = "프로필이 수정되었습니다."
	MsgPasswordChanged = "비밀번호가 변경되었습니다."
	MsgRegistered      = "회원가입이 완료되었습니다."
	MsgCodeSent        = "인증 코드가 발송되었습니다."
	MsgEmailVerified   = "이메일 인증이 완료되었습니다."
	MsgPasswordReset   = "비밀번호가 재설정되었습니다."
	MsgResetMailSent   = "비밀번호 재설정 메일이 발송되었습니다."
	MsgAddressSaved    = "배송지가 저장되었습니다."
	MsgAddressDeleted  = "배송지가 삭제되었습니다."
	MsgOrderCanceled   = "주문이 취소되었습니다."
	MsgReviewCreated   = "리뷰가 등록되었습니다."
	MsgCartUpdated     = "장바구니가 수정되었습니다."
	MsgCachesReset     = "Caches reset successfully"
	MsgRetrieved       = "OK"

	MsgInvalidEmail     = "올바른 이메일 형식이 아닙니다."
	MsgRequiredField    = "필수 항목을 입력해주세요."
	MsgFlowStepConflict = "현재 단계에서 수행할 수 없는 요청입니다. 처음부터 다시 시도해주세요."

	codeValidation      = "VALIDATION_ERROR"
	codeInvalidFlowStep = "INVALID_STEP"
	codeInternal        = "INTERNAL_ERROR"
)

// badRequestErrors are user-facing messages answered with 400.
var badRequestErrors = []error{
	apperrors.ErrInvalidRequestPayload,
	apperrors.ErrInvalidPriceRange,
	apperrors.ErrInvalidPageSize,
	apperrors.ErrInvalidSortOption,
	apperrors.ErrEmailRequired,
	apperrors.ErrCodeRequired,
	apperrors.ErrCredentialsRequired,
	apperrors.ErrVerificationFailed,
	apperrors.ErrCredentialsMismatch,
	apperrors.ErrLoginIDNotChecked,
	apperrors.ErrEmailNotVerified,
	apperrors.ErrPasswordPolicy,
	apperrors.ErrPasswordConfirmation,
	apperrors.ErrTermsNotAgreed,
	apperrors.ErrLoginFailed,
	apperrors.ErrPasswordResetFailed,
	apperrors.ErrDuplicateCheckFailed,
	apperrors.ErrSendVerificationFailed,
	apperrors.ErrLoginIDNotFound,
	apperrors.ErrCodeMismatch,
	apperrors.ErrFindPasswordFailed,
	apperrors.ErrRegisterFailed,
}

func respondSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, models.SuccessResponse{
		Message: message,
		Data:    data,
	})
}

func respondError(c echo.Context, status int, err error) error {
	return c.JSON(status, models.ErrorResponse{
		Error: err.Error(),
	})
}

func respondErrorCode(c echo.Context, status int, message, code string) error {
	return c.JSON(status, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError writes the error response. Upstream 401s are returned instead so
// the unauthorized middleware can decide between a redirect and a plain 401.
func handleError(c echo.Context, log *logrus.Logger, err error) error {
	if errors.Is(err, apperrors.ErrUnauthorized) {
		return err
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return respondErrorCode(c, http.StatusBadRequest, validationMessage(verrs), codeValidation)
	}

	if errors.Is(err, apperrors.ErrInvalidFlowStep) {
		return respondErrorCode(c, http.StatusConflict, MsgFlowStepConflict, codeInvalidFlowStep)
	}

	if errors.Is(err, apperrors.ErrInvalidUserSession) {
		return respondError(c, http.StatusUnauthorized, err)
	}

	if apiErr, ok := apiclient.AsAPIError(err); ok {
		status := apiErr.Status
		switch {
		case status == 0:
			status = http.StatusBadGateway
		case status < http.StatusBadRequest:
			status = http.StatusBadRequest
		}

		log.WithFields(logrus.Fields{
			"path":            c.Request().URL.Path,
			"upstream_status": apiErr.Status,
			"code":            apiErr.Code,
			"error":           err,
		}).Warn("Upstream request failed")
		return respondErrorCode(c, status, err.Error(), apiErr.Code)
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return respondError(c, http.StatusBadRequest, err)
		}
	}

	log.WithFields(logrus.Fields{"path": c.Request().URL.Path, "error": err}).Error("Unhandled error")
	return respondErrorCode(c, http.StatusInternalServerError, apperrors.ErrInternalServerError.Error(), codeInternal)
}

func validationMessage(verrs validator.ValidationErrors) string {
	if len(verrs) == 0 {
		return apperrors.ErrInvalidRequestPayload.Error()
	}

	switch verrs[0].Tag() {
	case "password":
		return apperrors.ErrPasswordPolicy.Error()
	case "eqfield":
		return apperrors.ErrPasswordConfirmation.Error()
	case "email":
		return MsgInvalidEmail
	case "required":
		return MsgRequiredField
	}
	return apperrors.ErrInvalidRequestPayload.Error()
}
