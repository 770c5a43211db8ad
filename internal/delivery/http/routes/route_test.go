package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanjin5212/myfarm-storefront/internal/configs"
	"github.com/chanjin5212/myfarm-storefront/internal/delivery/http/middlewares"
	"github.com/chanjin5212/myfarm-storefront/internal/handlers"
	"github.com/chanjin5212/myfarm-storefront/internal/helpers"
	"github.com/chanjin5212/myfarm-storefront/internal/messaging"
	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
	redisclient "github.com/chanjin5212/myfarm-storefront/internal/pkg/redis"
	"github.com/chanjin5212/myfarm-storefront/internal/repositories"
	"github.com/chanjin5212/myfarm-storefront/internal/services"
	"github.com/chanjin5212/myfarm-storefront/internal/views"
)

const upstreamCookie = "JSESSIONID"

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func loggedInUpstream(r *http.Request) bool {
	ck, err := r.Cookie(upstreamCookie)
	return err == nil && ck.Value == "up-123"
}

func newUpstream(t *testing.T, beforeList func()) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/v1/login", func(w http.ResponseWriter, r *http.Request) {
		var body models.UpstreamLoginReq
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.LoginID != "farmer01" || body.Password != "Potato123!" {
			writeJSON(w, http.StatusUnauthorized, `{"message":"아이디 또는 비밀번호가 올바르지 않습니다."}`)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: upstreamCookie, Value: "up-123", Path: "/"})
		writeJSON(w, http.StatusOK, `{"success":true,"data":null}`)
	})
	mux.HandleFunc("GET /users/v1/me", func(w http.ResponseWriter, r *http.Request) {
		if !loggedInUpstream(r) {
			writeJSON(w, http.StatusUnauthorized, `{"message":"세션이 만료되었습니다."}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":"u1","login_id":"farmer01","email":"farmer@myfarm.kr","name":"김농부","phone_number":"010-1234-5678"}}`)
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"message":"세션이 만료되었습니다."}`)
	})
	mux.HandleFunc("GET /products/v1", func(w http.ResponseWriter, r *http.Request) {
		if beforeList != nil {
			beforeList()
		}
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"products":[{"id":"p1","name":"감자 5kg","price":12900,"status":"ACTIVE"}],"totalCount":1}}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type testServer struct {
	e  *echo.Echo
	mr *miniredis.Miniredis
}

func (s *testServer) sessionKeys() []string {
	var keys []string
	for _, k := range s.mr.Keys() {
		if strings.HasPrefix(k, "session:") {
			keys = append(keys, k)
		}
	}
	return keys
}

func newTestServer(t *testing.T, adminToken string) *echo.Echo {
	return startTestServer(t, adminToken, nil).e
}

func startTestServer(t *testing.T, adminToken string, beforeList func()) *testServer {
	t.Helper()
	log, _ := test.NewNullLogger()

	mr := miniredis.RunT(t)
	rc := redisclient.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), log)

	api := apiclient.New(newUpstream(t, beforeList).URL, 5*time.Second, log)
	validate := helpers.NewValidator()
	publisher := messaging.NewNoopPublisher(log)
	productSvc := services.NewProductService(api, rc, configs.CacheConfig{ProductListTTL: time.Minute, ProductDetailTTL: time.Minute}, validate, log)

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	sessionCfg := configs.SessionConfig{Secret: "test-secret", CookieName: "sf_session", TTL: time.Hour}

	e := echo.New()
	e.Renderer = renderer

	InitRoutes(e, Handlers{
		Auth:         handlers.NewAuthHandler(services.NewAuthService(api, publisher, validate, log), log),
		Registration: handlers.NewRegistrationHandler(services.NewRegistrationService(api, publisher, validate, log), log),
		Recovery:     handlers.NewRecoveryHandler(services.NewRecoveryService(api, publisher, validate, log), log),
		Product:      handlers.NewProductHandler(productSvc, log),
		Order:        handlers.NewOrderHandler(services.NewOrderService(api, validate, log), log),
		MyPage:       handlers.NewMyPageHandler(services.NewShippingService(api, validate, log), services.NewReviewService(api, validate, log), log),
		Cart:         handlers.NewCartHandler(services.NewCartService(api, validate, log), log),
		Page:         handlers.NewPageHandler(productSvc, log),
	}, Options{
		Session:     middlewares.SessionMiddleware(repositories.NewSessionRepository(rc, sessionCfg.TTL, log), sessionCfg, log),
		RateLimiter: middlewares.NewRateLimiter(600, 100),
		AdminToken:  adminToken,
		Log:         log,
	})
	return &testServer{e: e, mr: mr}
}

type browser struct {
	t      *testing.T
	e      *echo.Echo
	cookie *http.Cookie
}

func (b *browser) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	b.t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}

	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name != "sf_session" {
			continue
		}
		if ck.MaxAge < 0 {
			b.cookie = nil
		} else {
			b.cookie = ck
		}
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestLoginAndProfile(t *testing.T) {
	b := &browser{t: t, e: newTestServer(t, "")}

	rec := b.do(http.MethodGet, "/api/auth/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, b.cookie, "an untouched visitor gets no session")

	var sessionBody struct {
		Data models.SessionRes `json:"data"`
	}
	decodeBody(t, rec, &sessionBody)
	assert.False(t, sessionBody.Data.LoggedIn)

	rec = b.do(http.MethodGet, "/api/mypage/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var errBody models.ErrorResponse
	decodeBody(t, rec, &errBody)
	assert.Equal(t, "/login", errBody.Redirect)

	rec = b.do(http.MethodPost, "/api/auth/login", `{"login_id":"farmer01","password":"Potato123!"}`, map[string]string{middlewares.HeaderPagePath: "/login"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &sessionBody)
	assert.True(t, sessionBody.Data.LoggedIn)
	assert.Equal(t, "farmer01", sessionBody.Data.LoginID)

	rec = b.do(http.MethodGet, "/api/mypage/me", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var meBody struct {
		Data models.ProfileRes `json:"data"`
	}
	decodeBody(t, rec, &meBody)
	assert.Equal(t, "김농부", meBody.Data.DisplayName)
	assert.Equal(t, "farmer@myfarm.kr", meBody.Data.Email)
}

func TestLoginFailureStaysOnLoginPage(t *testing.T) {
	b := &browser{t: t, e: newTestServer(t, "")}

	rec := b.do(http.MethodPost, "/api/auth/login", `{"login_id":"farmer01","password":"wrong"}`, map[string]string{middlewares.HeaderPagePath: "/login"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body models.ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "로그인에 실패했습니다. 아이디와 비밀번호를 확인해주세요.", body.Error)
	assert.Empty(t, body.Redirect)
}

func TestExpiredUpstreamSessionRedirects(t *testing.T) {
	b := &browser{t: t, e: newTestServer(t, "")}

	rec := b.do(http.MethodPost, "/api/auth/login", `{"login_id":"farmer01","password":"Potato123!"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = b.do(http.MethodGet, "/api/mypage/orders", "", map[string]string{middlewares.HeaderPagePath: "/mypage/orders"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body models.ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "/login", body.Redirect)

	rec = b.do(http.MethodGet, "/api/mypage/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "login flag is cleared after the redirect")
}

func TestPages(t *testing.T) {
	b := &browser{t: t, e: newTestServer(t, "")}

	rec := b.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "감자 5kg")
	assert.Contains(t, rec.Body.String(), "12,900원")

	rec = b.do(http.MethodGet, "/company", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "강원찐농부")

	rec = b.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartCountForAnonymousVisitor(t *testing.T) {
	b := &browser{t: t, e: newTestServer(t, "")}

	rec := b.do(http.MethodGet, "/api/cart/count", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data models.CartCount `json:"data"`
	}
	decodeBody(t, rec, &body)
	assert.Zero(t, body.Data.Count)
}

func TestAdminCacheReset(t *testing.T) {
	disabled := &browser{t: t, e: newTestServer(t, "")}
	assert.Equal(t, http.StatusNotFound, disabled.do(http.MethodPost, "/api/admin/reset-caches", "", nil).Code)

	enabled := &browser{t: t, e: newTestServer(t, "ops-token")}
	assert.Equal(t, http.StatusForbidden, enabled.do(http.MethodPost, "/api/admin/reset-caches", "", nil).Code)
	assert.Equal(t, http.StatusOK, enabled.do(http.MethodPost, "/api/admin/reset-caches", "", map[string]string{middlewares.HeaderAdminToken: "ops-token"}).Code)
}

func TestPasswordCheck(t *testing.T) {
	b := &browser{t: t, e: newTestServer(t, "")}

	rec := b.do(http.MethodPost, "/api/register/password-check", `{"password":"abc","confirm_password":"abd"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data models.PasswordCheckRes `json:"data"`
	}
	decodeBody(t, rec, &body)
	assert.False(t, body.Data.Validation.IsValid)
	require.NotNil(t, body.Data.Confirm)
	assert.False(t, body.Data.Confirm.IsValid)
}

func TestOutOfOrderStepConflicts(t *testing.T) {
	b := &browser{t: t, e: newTestServer(t, "")}

	rec := b.do(http.MethodPost, "/api/forgot-password/reset", `{"new_password":"Potato123!","confirm_password":"Potato123!"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginIssuesNewSession(t *testing.T) {
	b := &browser{t: t, e: newTestServer(t, "")}

	rec := b.do(http.MethodGet, "/api/register/state", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, b.cookie)
	preLogin := b.cookie

	rec = b.do(http.MethodPost, "/api/auth/login", `{"login_id":"farmer01","password":"Potato123!"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, b.cookie)
	assert.NotEqual(t, preLogin.Value, b.cookie.Value)

	stale := &browser{t: t, e: b.e, cookie: preLogin}
	rec = stale.do(http.MethodGet, "/api/mypage/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "the pre-login cookie is not logged in")

	rec = b.do(http.MethodGet, "/api/mypage/me", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutDropsSession(t *testing.T) {
	srv := startTestServer(t, "", nil)
	b := &browser{t: t, e: srv.e}

	require.Equal(t, http.StatusOK, b.do(http.MethodPost, "/api/auth/login", `{"login_id":"farmer01","password":"Potato123!"}`, nil).Code)
	require.Len(t, srv.sessionKeys(), 1)
	loggedIn := b.cookie

	require.Equal(t, http.StatusOK, b.do(http.MethodPost, "/api/auth/logout", "", nil).Code)
	assert.Nil(t, b.cookie)
	assert.Empty(t, srv.sessionKeys())

	stale := &browser{t: t, e: srv.e, cookie: loggedIn}
	assert.Equal(t, http.StatusUnauthorized, stale.do(http.MethodGet, "/api/mypage/me", "", nil).Code)
}

func TestCookielessRequestsStoreNoSession(t *testing.T) {
	srv := startTestServer(t, "", nil)

	for _, path := range []string{"/health", "/", "/company", "/api/products", "/api/cart/count", "/api/auth/session"} {
		for i := 0; i < 3; i++ {
			b := &browser{t: t, e: srv.e}
			rec := b.do(http.MethodGet, path, "", nil)
			require.Equal(t, http.StatusOK, rec.Code, path)
			assert.Nil(t, b.cookie, path)
		}
	}
	assert.Empty(t, srv.sessionKeys())
}

func TestSlowRequestDoesNotUndoLogin(t *testing.T) {
	listStarted := make(chan struct{})
	releaseList := make(chan struct{})
	var once sync.Once
	srv := startTestServer(t, "", func() {
		once.Do(func() { close(listStarted) })
		<-releaseList
	})
	release := sync.OnceFunc(func() { close(releaseList) })
	t.Cleanup(release)

	b := &browser{t: t, e: srv.e}
	require.Equal(t, http.StatusOK, b.do(http.MethodGet, "/api/register/state", "", nil).Code)
	require.NotNil(t, b.cookie)
	preLogin := b.cookie

	done := make(chan int)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.AddCookie(preLogin)
		rec := httptest.NewRecorder()
		srv.e.ServeHTTP(rec, req)
		done <- rec.Code
	}()

	<-listStarted
	require.Equal(t, http.StatusOK, b.do(http.MethodPost, "/api/auth/login", `{"login_id":"farmer01","password":"Potato123!"}`, nil).Code)
	release()
	assert.Equal(t, http.StatusOK, <-done)

	assert.Equal(t, http.StatusOK, b.do(http.MethodGet, "/api/mypage/me", "", nil).Code)
}
