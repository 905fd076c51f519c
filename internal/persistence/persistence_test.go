package persistence

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/signup-flow/internal/config"
)

func TestNewPostgres_RequiresDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())

	assert.Error(t, err)
}

func TestNewRedis_Unreachable(t *testing.T) {
	_, err := NewRedis(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())

	assert.Error(t, err)
}

func TestRunMigrations_NoPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, "does-not-exist", zap.NewNop()))
}

func TestNilHandles(t *testing.T) {
	var pg *Postgres
	var r *Redis

	assert.Nil(t, pg.PoolHandle())
	pg.Close()
	r.Close()
}

func TestPostgres_RunMigrations(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	pg, err := NewPostgres(ctx, config.PostgresConfig{DSN: dsn}, zap.NewNop())
	require.NoError(t, err)
	defer pg.Close()

	require.NoError(t, RunMigrations(ctx, pg.PoolHandle(), "../../migrations", zap.NewNop()))
	// Migrations are idempotent.
	require.NoError(t, RunMigrations(ctx, pg.PoolHandle(), "../../migrations", zap.NewNop()))

	var exists bool
	require.NoError(t, pg.Pool.QueryRow(ctx, `SELECT to_regclass('public.sessions') IS NOT NULL`).Scan(&exists))
	assert.True(t, exists)
}
