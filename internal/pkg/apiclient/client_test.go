package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	log, _ := test.NewNullLogger()
	return New(srv.URL+"/api/", time.Second, log)
}

func TestClientDo(t *testing.T) {
	t.Run("sends json body, query and cookies", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/users/v1/login", r.URL.Path)
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			ck, err := r.Cookie("JSESSIONID")
			require.NoError(t, err)
			assert.Equal(t, "abc", ck.Value)

			b, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"loginId":"farmer","password":"pw"}`, string(b))

			http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "def"})
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"success":true}`))
		})

		resp, err := c.Do(context.Background(), Request{
			Method:  http.MethodPost,
			Path:    "/users/v1/login",
			Query:   url.Values{"page": {"1"}},
			Body:    map[string]string{"loginId": "farmer", "password": "pw"},
			Cookies: map[string]string{"JSESSIONID": "abc"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)
		require.Len(t, resp.Cookies, 1)
		assert.Equal(t, "def", resp.Cookies[0].Value)
	})

	cases := map[string]struct {
		status   int
		body     string
		wantMsg  string
		wantCode string
	}{
		"message field": {
			status: http.StatusBadRequest, body: `{"message":"이미 사용 중인 아이디입니다.","code":"DUPLICATE"}`,
			wantMsg: "이미 사용 중인 아이디입니다.", wantCode: "DUPLICATE",
		},
		"error field": {
			status: http.StatusConflict, body: `{"error":"conflict"}`,
			wantMsg: "conflict",
		},
		"no body": {
			status: http.StatusInternalServerError, body: ``,
			wantMsg: "Request failed with status code 500",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tc.wantMsg, apiErr.Message)
			assert.Equal(t, tc.wantCode, apiErr.Code)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.ErrorIs(t, err, apperrors.ErrUpstream)
		})
	}

	t.Run("401 matches ErrUnauthorized", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/users/v1/me"})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("network failure", func(t *testing.T) {
		log, _ := test.NewNullLogger()
		c := New("http://127.0.0.1:1", time.Second, log)

		_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, CodeNetwork, apiErr.Code)
		assert.Zero(t, apiErr.Status)
		assert.NotEmpty(t, apiErr.Message)
	})
}

func TestDecodeData(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	t.Run("unwraps envelope", func(t *testing.T) {
		var out payload
		err := DecodeData(&Response{Status: 200, Body: []byte(`{"success":true,"data":{"email":"a@b.kr"}}`)}, &out)
		require.NoError(t, err)
		assert.Equal(t, "a@b.kr", out.Email)
	})

	t.Run("raw body", func(t *testing.T) {
		var out payload
		err := DecodeData(&Response{Status: 200, Body: []byte(`{"email":"a@b.kr"}`)}, &out)
		require.NoError(t, err)
		assert.Equal(t, "a@b.kr", out.Email)
	})

	t.Run("mutation without data decodes whole body", func(t *testing.T) {
		var out struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		err := DecodeData(&Response{Status: 200, Body: []byte(`{"success":true,"message":"ok"}`)}, &out)
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, "ok", out.Message)
	})

	t.Run("unsuccessful envelope", func(t *testing.T) {
		err := DecodeData(&Response{Status: 200, Body: []byte(`{"success":false,"error":"인증 코드가 만료되었습니다."}`)}, nil)
		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "인증 코드가 만료되었습니다.", apiErr.Message)
	})

	t.Run("array body", func(t *testing.T) {
		var out []payload
		body, _ := json.Marshal([]payload{{Email: "x@y.kr"}})
		require.NoError(t, DecodeData(&Response{Status: 200, Body: body}, &out))
		assert.Len(t, out, 1)
	})

	t.Run("empty body", func(t *testing.T) {
		var out payload
		assert.NoError(t, DecodeData(&Response{Status: 204}, &out))
	})
}
