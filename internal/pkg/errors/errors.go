package errors

import "errors"

var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrInvalidUserSession    = errors.New("invalid user session")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionConflict       = errors.New("session was changed by another request")
	ErrInternalServerError   = errors.New("internal server error")

	// upstream
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream request failed")

	// products
	ErrInvalidPriceRange = errors.New("최소 가격은 최대 가격보다 클 수 없습니다.")
	ErrInvalidPageSize   = errors.New("invalid page size")
	ErrInvalidSortOption = errors.New("invalid sort option")

	// multi-step forms
	ErrInvalidFlowStep = errors.New("invalid step for this action")

	ErrEmailRequired          = errors.New("이메일을 입력해주세요.")
	ErrCodeRequired           = errors.New("인증 코드를 입력해주세요.")
	ErrCredentialsRequired    = errors.New("이메일과 로그인 ID를 모두 입력해주세요.")
	ErrVerificationFailed     = errors.New("인증에 실패했습니다. 인증 코드를 확인해주세요.")
	ErrCredentialsMismatch    = errors.New("입력하신 이메일과 로그인 ID가 일치하지 않습니다.")
	ErrLoginIDNotChecked      = errors.New("로그인 ID 중복 확인을 완료해주세요.")
	ErrEmailNotVerified       = errors.New("이메일 인증을 완료해주세요.")
	ErrPasswordPolicy         = errors.New("비밀번호 조건을 확인해주세요.")
	ErrPasswordConfirmation   = errors.New("비밀번호 확인을 확인해주세요.")
	ErrTermsNotAgreed         = errors.New("필수 약관에 동의해주세요.")
	ErrLoginFailed            = errors.New("로그인에 실패했습니다. 아이디와 비밀번호를 확인해주세요.")
	ErrPasswordResetFailed    = errors.New("비밀번호 재설정에 실패했습니다.")
	ErrDuplicateCheckFailed   = errors.New("중복 확인 중 오류가 발생했습니다.")
	ErrSendVerificationFailed = errors.New("인증 코드 발송에 실패했습니다.")
	ErrLoginIDNotFound        = errors.New("아이디를 찾을 수 없습니다.")
	ErrCodeMismatch           = errors.New("인증 코드가 일치하지 않습니다.")
	ErrFindPasswordFailed     = errors.New("비밀번호 찾기 확인에 실패했습니다.")
	ErrRegisterFailed         = errors.New("회원가입에 실패했습니다.")
)

// UserError shows a fixed message to the user while keeping the cause
// reachable through errors.Is and errors.As.
type UserError struct {
	Public error
	Cause  error
}

func (e *UserError) Error() string {
	return e.Public.Error()
}

func (e *UserError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Public}
	}
	return []error{e.Public, e.Cause}
}

func Wrap(public, cause error) error {
	return &UserError{Public: public, Cause: cause}
}
