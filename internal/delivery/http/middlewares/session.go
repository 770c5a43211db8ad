package middlewares

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/configs"
	"github.com/chanjin5212/myfarm-storefront/internal/models"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
	"github.com/chanjin5212/myfarm-storefront/internal/repositories"
)

const sessionContextKey = "session"

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

func SignSessionToken(sid, secret string, ttl time.Duration, now time.Time) (string, error) {
	claims := sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionToken returns the session id and expiry of a valid token.
func ParseSessionToken(tokenString, secret string) (string, time.Time, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.SID == "" {
		return "", time.Time{}, apperrors.ErrSessionNotFound
	}
	return claims.SID, claims.ExpiresAt.Time, nil
}

// SessionMiddleware loads the browser's session. A visitor without a valid
// cookie gets an in-memory session that is stored, and given a cookie, only
// once a handler changes it. Unchanged sessions are never written back.
func SessionMiddleware(repo repositories.SessionRepository, cfg configs.SessionConfig, log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var sess *models.Session
			var expiresAt time.Time
			if ck, err := c.Cookie(cfg.CookieName); err == nil {
				if sid, exp, err := ParseSessionToken(ck.Value, cfg.Secret); err == nil {
					sess, err = repo.Get(ctx, sid)
					if err != nil && !errors.Is(err, apperrors.ErrSessionNotFound) {
						log.WithError(err).Error("Failed to load session")
						return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: apperrors.ErrInternalServerError.Error()})
					}
					expiresAt = exp
				}
			}
			if sess == nil {
				sess = repo.New()
				expiresAt = time.Time{}
			}

			loaded, err := json.Marshal(sess)
			if err != nil {
				log.WithError(err).Error("Failed to snapshot session")
				return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: apperrors.ErrInternalServerError.Error()})
			}

			finished := false
			finish := func() {
				if finished {
					return
				}
				finished = true
				finishSession(c, repo, cfg, log, sess, loaded, expiresAt)
			}
			// cookies must be set before the response header goes out
			c.Response().Before(finish)

			c.Set(sessionContextKey, sess)
			handlerErr := next(c)
			if !c.Response().Committed {
				finish()
			}
			return handlerErr
		}
	}
}

func finishSession(c echo.Context, repo repositories.SessionRepository, cfg configs.SessionConfig, log *logrus.Logger, sess *models.Session, loaded []byte, expiresAt time.Time) {
	ctx := c.Request().Context()
	now := time.Now()
	fields := logrus.Fields{"session_id": sess.ID}

	switch {
	case sess.Destroyed():
		if sess.Persisted() {
			if err := repo.Delete(ctx, sess.ID); err != nil {
				log.WithFields(fields).WithError(err).Error("Failed to delete session")
			}
		}
		c.SetCookie(expiredSessionCookie(cfg))
		return

	case sess.RenewRequested():
		oldID, wasPersisted := sess.ID, sess.Persisted()
		fresh := repo.New()
		sess.ID = fresh.ID
		sess.Version = 0
		sess.CreatedAt = fresh.CreatedAt
		if err := repo.Save(ctx, sess); err != nil {
			log.WithFields(fields).WithError(err).Error("Failed to save renewed session")
			return
		}
		if wasPersisted {
			if err := repo.Delete(ctx, oldID); err != nil {
				log.WithFields(fields).WithError(err).Error("Failed to delete replaced session")
			}
		}
		log.WithFields(logrus.Fields{"old_session_id": oldID, "session_id": sess.ID}).Debug("Session renewed")
		setSessionCookie(c, cfg, sess.ID, now, log)
		return
	}

	current, err := json.Marshal(sess)
	if err != nil {
		log.WithFields(fields).WithError(err).Error("Failed to snapshot session")
		return
	}

	saved := false
	if !bytes.Equal(loaded, current) {
		// conflicts are already logged by the repository
		if err := repo.Save(ctx, sess); err != nil {
			if !errors.Is(err, apperrors.ErrSessionConflict) {
				log.WithFields(fields).WithError(err).Error("Failed to save session")
			}
			return
		}
		saved = true
	}
	if !sess.Persisted() {
		return
	}

	// reissue the cookie once less than half of its lifetime is left
	if expiresAt.Sub(now) < cfg.TTL/2 {
		if !saved {
			if err := repo.Touch(ctx, sess.ID); err != nil {
				return
			}
		}
		setSessionCookie(c, cfg, sess.ID, now, log)
	}
}

func setSessionCookie(c echo.Context, cfg configs.SessionConfig, sid string, now time.Time, log *logrus.Logger) {
	token, err := SignSessionToken(sid, cfg.Secret, cfg.TTL, now)
	if err != nil {
		log.WithError(err).Error("Failed to sign session token")
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(cfg.TTL),
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func expiredSessionCookie(cfg configs.SessionConfig) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func GetSession(c echo.Context) (*models.Session, error) {
	if sess, ok := c.Get(sessionContextKey).(*models.Session); ok && sess != nil {
		return sess, nil
	}
	return nil, apperrors.ErrInvalidUserSession
}
