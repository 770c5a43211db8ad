package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/helpers"
	"github.com/chanjin5212/myfarm-storefront/internal/models"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
	redisclient "github.com/chanjin5212/myfarm-storefront/internal/pkg/redis"
)

const sessionKeyPrefix = "session:"

// SessionRepository stores sessions. Save is a compare-and-set on
// Session.Version and fails with ErrSessionConflict when the stored copy moved on.
type SessionRepository interface {
	New() *models.Session
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, sess *models.Session) error
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	redisClient *redisclient.RedisClient
	ttl         time.Duration
	now         func() time.Time
	log         *logrus.Logger
}

func NewSessionRepository(redisClient *redisclient.RedisClient, ttl time.Duration, log *logrus.Logger) SessionRepository {
	return &sessionRepository{
		redisClient: redisClient,
		ttl:         ttl,
		now:         time.Now,
		log:         log,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// New returns an unsaved session with a fresh id.
func (r *sessionRepository) New() *models.Session {
	now := r.now().UTC()
	return &models.Session{
		ID:        helpers.GenerateNewID().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	if !helpers.IsValidUUID(id) {
		return nil, apperrors.ErrSessionNotFound
	}

	val, err := r.redisClient.Client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		r.log.WithFields(logrus.Fields{"session_id": id, "error": err}).Error("Failed to read session")
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		r.log.WithFields(logrus.Fields{"session_id": id, "error": err}).Warn("Corrupted session, discarding")
		return nil, apperrors.ErrSessionNotFound
	}

	return &sess, nil
}

// Save writes the session when the stored version still matches, bumps the
// version and refreshes the TTL. A session that is gone from the store can
// only be written again as a new one (version 0).
func (r *sessionRepository) Save(ctx context.Context, sess *models.Session) error {
	key := sessionKey(sess.ID)

	next := *sess
	next.Version++
	next.UpdatedAt = r.now().UTC()
	b, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	txf := func(tx *redis.Tx) error {
		stored, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if stored != sess.Version {
			return apperrors.ErrSessionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, r.ttl)
			return nil
		})
		return err
	}

	err = r.redisClient.Client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		err = apperrors.ErrSessionConflict
	}
	if errors.Is(err, apperrors.ErrSessionConflict) {
		r.log.WithField("session_id", sess.ID).Warn("Session changed by another request, write dropped")
		return err
	}
	if err != nil {
		r.log.WithFields(logrus.Fields{"session_id": sess.ID, "error": err}).Error("Failed to write session")
		return fmt.Errorf("failed to write session: %w", err)
	}

	sess.Version = next.Version
	sess.UpdatedAt = next.UpdatedAt
	return nil
}

// Touch extends the TTL of a stored session.
func (r *sessionRepository) Touch(ctx context.Context, id string) error {
	if err := r.redisClient.Client.Expire(ctx, sessionKey(id), r.ttl).Err(); err != nil {
		r.log.WithFields(logrus.Fields{"session_id": id, "error": err}).Error("Failed to refresh session")
		return fmt.Errorf("failed to refresh session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.redisClient.Client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.log.WithFields(logrus.Fields{"session_id": id, "error": err}).Error("Failed to delete session")
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	val, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var stored struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(val, &stored); err != nil {
		// corrupted entries are overwritten only by a new session
		return 0, nil
	}
	return stored.Version, nil
}
