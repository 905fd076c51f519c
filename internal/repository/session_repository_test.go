package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/signup-flow/internal/domain"
)

func newSession(userID string) *domain.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     "token-" + userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func exerciseRepository(t *testing.T, repo SessionRepository) {
	t.Helper()
	ctx := context.Background()
	userID := "u-" + uuid.NewString()

	_, err := repo.GetByUserID(ctx, userID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	first := newSession(userID)
	require.NoError(t, repo.Save(ctx, first))

	second := newSession(userID)
	second.Token = "rotated"
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "rotated", got.Token)
	assert.True(t, second.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, repo.Delete(ctx, userID))
	require.ErrorIs(t, repo.Delete(ctx, userID), ErrSessionNotFound)
}

func TestMemorySessionRepository(t *testing.T) {
	exerciseRepository(t, NewMemorySessionRepository())
}

func TestRedisSessionRepository(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	exerciseRepository(t, NewRedisSessionRepository(client, "test:session:"))
}

func TestRedisSessionRepository_RejectsExpired(t *testing.T) {
	repo := &redisSessionRepository{prefix: "x:", now: time.Now}
	session := newSession("u1")
	session.ExpiresAt = time.Now().Add(-time.Minute)

	err := repo.Save(context.Background(), session)

	require.Error(t, err)
}

func TestPostgresSessionRepository(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	schema, err := os.ReadFile("../../migrations/0001_create_sessions.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	exerciseRepository(t, NewPostgresSessionRepository(pool))
}
