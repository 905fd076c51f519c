package session

import (
	"context"
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/signup-flow/internal/domain"
	"github.com/spec-kit/signup-flow/internal/repository"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	return token
}

func newTestSink(repo repository.SessionRepository) *Sink {
	s := NewSink(repo, 30*time.Minute, nil)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestReadClaims(t *testing.T) {
	token := signed(t, jwt.MapClaims{
		"sub": "u1",
		"iat": fixedNow.Unix(),
		"exp": fixedNow.Add(2 * time.Hour).Unix(),
	})

	claims, ok := ReadClaims(token)

	require.True(t, ok)
	assert.Equal(t, "u1", claims.Subject)
	assert.True(t, claims.IssuedAt.Equal(fixedNow))
	assert.True(t, claims.ExpiresAt.Equal(fixedNow.Add(2*time.Hour)))
}

func TestReadClaims_OpaqueToken(t *testing.T) {
	_, ok := ReadClaims("t1")
	assert.False(t, ok)
}

func TestSink_EstablishSession_OpaqueTokenUsesDefaultTTL(t *testing.T) {
	repo := repository.NewMemorySessionRepository()
	sink := newTestSink(repo)

	require.NoError(t, sink.EstablishSession(context.Background(), "t1", "u1"))

	got, err := repo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "t1", got.Token)
	assert.True(t, got.IssuedAt.Equal(fixedNow))
	assert.True(t, got.ExpiresAt.Equal(fixedNow.Add(30*time.Minute)))
}

func TestSink_EstablishSession_JWTExpiryAndSubject(t *testing.T) {
	repo := repository.NewMemorySessionRepository()
	sink := newTestSink(repo)
	token := signed(t, jwt.MapClaims{"sub": "from-token", "exp": fixedNow.Add(90 * time.Minute).Unix()})

	require.NoError(t, sink.EstablishSession(context.Background(), token, ""))

	got, err := sink.Current(context.Background(), "from-token")
	require.NoError(t, err)
	assert.Equal(t, token, got.Token)
	assert.True(t, got.ExpiresAt.Equal(fixedNow.Add(90*time.Minute)))
}

func TestSink_EstablishSession_UserIDWinsOverSubject(t *testing.T) {
	repo := repository.NewMemorySessionRepository()
	sink := newTestSink(repo)
	token := signed(t, jwt.MapClaims{"sub": "other"})

	require.NoError(t, sink.EstablishSession(context.Background(), token, "u1"))

	_, err := repo.GetByUserID(context.Background(), "u1")
	assert.NoError(t, err)
}

func TestSink_EstablishSession_Rejections(t *testing.T) {
	sink := newTestSink(repository.NewMemorySessionRepository())
	ctx := context.Background()

	assert.ErrorIs(t, sink.EstablishSession(ctx, "", "u1"), ErrEmptyToken)
	assert.ErrorIs(t, sink.EstablishSession(ctx, "opaque", ""), ErrMissingUserID)

	expired := signed(t, jwt.MapClaims{"sub": "u1", "exp": fixedNow.Add(-time.Minute).Unix()})
	assert.ErrorIs(t, sink.EstablishSession(ctx, expired, "u1"), ErrTokenExpired)
}

type brokenRepo struct{ repository.SessionRepository }

func (brokenRepo) Save(context.Context, *domain.Session) error { return errors.New("redis down") }

func TestSink_EstablishSession_RepositoryError(t *testing.T) {
	sink := newTestSink(brokenRepo{})

	err := sink.EstablishSession(context.Background(), "t1", "u1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session")
}

func TestSink_Current_Expired(t *testing.T) {
	repo := repository.NewMemorySessionRepository()
	sink := newTestSink(repo)
	require.NoError(t, sink.EstablishSession(context.Background(), "t1", "u1"))

	sink.now = func() time.Time { return fixedNow.Add(time.Hour) }

	_, err := sink.Current(context.Background(), "u1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
