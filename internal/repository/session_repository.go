package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/signup-flow/internal/domain"
)

// ErrSessionNotFound is returned when no session exists for the user.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines persistence access for established sessions.
// Save replaces any previous session of the same user.
type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session) error
	GetByUserID(ctx context.Context, userID string) (*domain.Session, error)
	Delete(ctx context.Context, userID string) error
}

type postgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSessionRepository returns a Postgres-backed implementation.
func NewPostgresSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &postgresSessionRepository{pool: pool}
}

func (r *postgresSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (id, user_id, token, issued_at, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (user_id) DO UPDATE
        SET id = EXCLUDED.id, token = EXCLUDED.token,
            issued_at = EXCLUDED.issued_at, expires_at = EXCLUDED.expires_at`

	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Token,
		session.IssuedAt,
		session.ExpiresAt,
	)
	return err
}

func (r *postgresSessionRepository) GetByUserID(ctx context.Context, userID string) (*domain.Session, error) {
	const query = `
        SELECT id, user_id, token, issued_at, expires_at
        FROM sessions WHERE user_id=$1`

	var session domain.Session
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&session.IssuedAt,
		&session.ExpiresAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *postgresSessionRepository) Delete(ctx context.Context, userID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id=$1`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewMemorySessionRepository keeps sessions in process memory.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]domain.Session)}
}

func (r *memorySessionRepository) Save(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.UserID] = *session
	return nil
}

func (r *memorySessionRepository) GetByUserID(_ context.Context, userID string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[userID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (r *memorySessionRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[userID]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, userID)
	return nil
}
