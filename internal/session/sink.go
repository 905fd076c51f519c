package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/signup-flow/internal/domain"
	"github.com/spec-kit/signup-flow/internal/repository"
)

var (
	ErrEmptyToken    = errors.New("session token is empty")
	ErrMissingUserID = errors.New("session user id is empty and token has no subject")
	ErrTokenExpired  = errors.New("session token already expired")
)

// Sink receives the token of a fresh registration and keeps it in a repository.
type Sink struct {
	repo       repository.SessionRepository
	defaultTTL time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewSink builds a sink. defaultTTL applies when the token carries no expiry.
func NewSink(repo repository.SessionRepository, defaultTTL time.Duration, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &Sink{repo: repo, defaultTTL: defaultTTL, logger: logger, now: time.Now}
}

// EstablishSession stores the session for userID. An empty userID falls back to
// the token's subject claim.
func (s *Sink) EstablishSession(ctx context.Context, token, userID string) error {
	if token == "" {
		return ErrEmptyToken
	}

	now := s.now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.defaultTTL),
	}

	if claims, ok := ReadClaims(token); ok {
		if sess.UserID == "" {
			sess.UserID = claims.Subject
		}
		if !claims.IssuedAt.IsZero() {
			sess.IssuedAt = claims.IssuedAt.UTC()
		}
		if !claims.ExpiresAt.IsZero() {
			sess.ExpiresAt = claims.ExpiresAt.UTC()
		}
	}

	if sess.UserID == "" {
		return ErrMissingUserID
	}
	if sess.Expired(now) {
		return ErrTokenExpired
	}

	if err := s.repo.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("session established",
		zap.String("session_id", sess.ID),
		zap.String("user_id", sess.UserID),
		zap.Time("expires_at", sess.ExpiresAt))
	return nil
}

// Current returns the live session of userID.
func (s *Sink) Current(ctx context.Context, userID string) (*domain.Session, error) {
	sess, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		return nil, repository.ErrSessionNotFound
	}
	return sess, nil
}
