package models

import (
	"net/http"
	"time"

	"github.com/chanjin5212/myfarm-storefront/internal/flows"
)

// Session is the server-side state of one browser.
type Session struct {
	ID              string              `json:"id"`
	UpstreamCookies map[string]string   `json:"upstream_cookies,omitempty"`
	LoggedIn        bool                `json:"logged_in"`
	LoginID         string              `json:"login_id,omitempty"`
	Registration    *flows.Registration `json:"registration,omitempty"`
	FindID          *flows.FindID       `json:"find_id,omitempty"`
	FindPassword    *flows.FindPassword `json:"find_password,omitempty"`
	Version         int64               `json:"version"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`

	renew   bool
	destroy bool
}

// Persisted reports whether the session has been written to the store.
func (s *Session) Persisted() bool {
	return s.Version > 0
}

// Renew asks for the session to be moved to a new id when the request ends.
func (s *Session) Renew() {
	s.renew = true
}

func (s *Session) RenewRequested() bool {
	return s.renew
}

// Destroy asks for the session to be removed when the request ends.
func (s *Session) Destroy() {
	s.destroy = true
}

func (s *Session) Destroyed() bool {
	return s.destroy
}

// MergeCookies applies upstream Set-Cookie headers. Expired or emptied
// cookies are dropped.
func (s *Session) MergeCookies(cookies []*http.Cookie, now time.Time) {
	for _, ck := range cookies {
		if ck == nil || ck.Name == "" {
			continue
		}
		expired := ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(now))
		if expired || ck.Value == "" {
			delete(s.UpstreamCookies, ck.Name)
			continue
		}
		if s.UpstreamCookies == nil {
			s.UpstreamCookies = make(map[string]string)
		}
		s.UpstreamCookies[ck.Name] = ck.Value
	}
}

// ClearAuth forgets the upstream login but keeps form progress.
func (s *Session) ClearAuth() {
	s.UpstreamCookies = nil
	s.LoggedIn = false
	s.LoginID = ""
}

func (s *Session) RegistrationFlow() *flows.Registration {
	if s.Registration == nil {
		s.Registration = flows.NewRegistration()
	}
	return s.Registration
}

func (s *Session) FindIDFlow() *flows.FindID {
	if s.FindID == nil {
		s.FindID = flows.NewFindID()
	}
	return s.FindID
}

func (s *Session) FindPasswordFlow() *flows.FindPassword {
	if s.FindPassword == nil {
		s.FindPassword = flows.NewFindPassword()
	}
	return s.FindPassword
}
