package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

const (
	CodeNetwork = "ERR_NETWORK"
	CodeTimeout = "ERR_TIMEOUT"

	DefaultErrorMessage = "알 수 없는 오류가 발생했습니다."
)

// APIError is a failed upstream call. Status is 0 when no response arrived.
type APIError struct {
	Message string
	Code    string
	Status  int
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	switch target {
	case apperrors.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case apperrors.ErrNotFound:
		return e.Status == http.StatusNotFound
	case apperrors.ErrUpstream:
		return true
	}
	return false
}

// AsAPIError unwraps err into an *APIError if it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func newStatusError(status int, body []byte) *APIError {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}
	if msg == "" && status >= http.StatusBadRequest {
		msg = fmt.Sprintf("Request failed with status code %d", status)
	}
	if msg == "" {
		msg = DefaultErrorMessage
	}

	return &APIError{Message: msg, Code: eb.Code, Status: status}
}

func newTransportError(err error) *APIError {
	code := CodeNetwork
	if isTimeout(err) {
		code = CodeTimeout
	}

	msg := err.Error()
	if msg == "" {
		msg = DefaultErrorMessage
	}

	return &APIError{Message: msg, Code: code, Err: err}
}
