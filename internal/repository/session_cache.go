package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/signup-flow/internal/domain"
)

type redisSessionRepository struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisSessionRepository stores sessions as JSON under prefix+userID with a TTL
// matching the session's expiry.
func NewRedisSessionRepository(client *redis.Client, prefix string) SessionRepository {
	return &redisSessionRepository{client: client, prefix: prefix, now: time.Now}
}

func (r *redisSessionRepository) key(userID string) string {
	return r.prefix + userID
}

func (r *redisSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = session.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return fmt.Errorf("session for %s already expired", session.UserID)
		}
	}
	return r.client.Set(ctx, r.key(session.UserID), data, ttl).Err()
}

func (r *redisSessionRepository) GetByUserID(ctx context.Context, userID string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, userID string) error {
	n, err := r.client.Del(ctx, r.key(userID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
