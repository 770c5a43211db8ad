package configs

import "time"

type SessionConfig struct {
	Secret       string        `env:"SESSION_SECRET,required"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"sf_session"`
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}
