package services

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanjin5212/myfarm-storefront/internal/helpers"
	"github.com/chanjin5212/myfarm-storefront/internal/messaging"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
)

type routeFunc func(req apiclient.Request) (*apiclient.Response, error)

// fakeAPI answers by "METHOD /path" and records every request.
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]routeFunc
	calls  []apiclient.Request
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{routes: map[string]routeFunc{}}
}

func (f *fakeAPI) on(method, path string, fn routeFunc) *fakeAPI {
	f.routes[method+" "+path] = fn
	return f
}

func (f *fakeAPI) Do(_ context.Context, req apiclient.Request) (*apiclient.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	fn, ok := f.routes[req.Method+" "+req.Path]
	f.mu.Unlock()

	if !ok {
		return nil, &apiclient.APIError{Message: "no route", Status: http.StatusNotFound}
	}
	return fn(req)
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) lastCall(t *testing.T) apiclient.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func respondJSON(status int, body string, cookies ...*http.Cookie) routeFunc {
	return func(apiclient.Request) (*apiclient.Response, error) {
		return &apiclient.Response{Status: status, Body: []byte(body), Cookies: cookies}, nil
	}
}

func respondError(status int, message string) routeFunc {
	return func(apiclient.Request) (*apiclient.Response, error) {
		return nil, &apiclient.APIError{Message: message, Status: status}
	}
}

func assertBody(t *testing.T, req apiclient.Request, expected string) {
	t.Helper()
	b, err := json.Marshal(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, expected, string(b))
}

type fakePublisher struct {
	events chan messaging.ActivityEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{events: make(chan messaging.ActivityEvent, 10)}
}

func (p *fakePublisher) Publish(_ context.Context, event messaging.ActivityEvent) error {
	p.events <- event
	return nil
}

func (p *fakePublisher) next(t *testing.T) messaging.ActivityEvent {
	t.Helper()
	select {
	case ev := <-p.events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no activity event published")
		return messaging.ActivityEvent{}
	}
}

func (p *fakePublisher) assertNone(t *testing.T) {
	t.Helper()
	select {
	case ev := <-p.events:
		t.Fatalf("unexpected event %s", ev.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func testDeps() (*logrus.Logger, *fakePublisher) {
	log, _ := test.NewNullLogger()
	return log, newFakePublisher()
}

var testValidator = helpers.NewValidator()
