package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/signup-flow/internal/client"
	"github.com/spec-kit/signup-flow/internal/config"
	"github.com/spec-kit/signup-flow/internal/domain"
	"github.com/spec-kit/signup-flow/internal/form"
	"github.com/spec-kit/signup-flow/internal/navigation"
	"github.com/spec-kit/signup-flow/internal/repository"
	"github.com/spec-kit/signup-flow/internal/service"
	"github.com/spec-kit/signup-flow/internal/session"
)

func testPrompter(input string) (*prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &prompter{in: bufio.NewReader(strings.NewReader(input)), out: out}, out
}

func newTestService(t *testing.T, handler http.HandlerFunc) (*service.RegistrationService, repository.SessionRepository, *navigation.Recorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	repo := repository.NewMemorySessionRepository()
	nav := navigation.NewRecorder()
	cfg := config.Config{Client: config.ClientConfig{APIBaseURL: srv.URL, PostRegistrationPath: "/risk-check"}}
	svc := service.NewRegistrationService(cfg, service.RegistrationDependencies{
		Submitter: client.NewRegistrationClient(srv.Client(), nil),
		Sessions:  session.NewSink(repo, 0, nil),
		Navigator: nav,
	})
	return svc, repo, nav
}

func TestRun_InteractiveRetryThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	svc, repo, nav := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"message":"Email already registered."}`)
			return
		}
		_, _ = io.WriteString(w, `{"token":"t1","userId":"u1"}`)
	})

	input := strings.Join([]string{
		"Ada", "Lovelace", "ada@example.com", "abc123", "abc123",
		"y",
		"", "", "ada+2@example.com", "abc123", "abc123",
	}, "\n") + "\n"
	p, out := testPrompter(input)
	f := form.New(form.WithStrictValidation(true))

	code := run(context.Background(), svc, f, p, nil, true)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Error: Email already registered.")
	assert.Contains(t, out.String(), "Registration successful!")
	assert.Equal(t, "Ada", f.Input().FirstName)
	assert.Equal(t, "ada+2@example.com", f.Input().Email)
	assert.Equal(t, []string{"/risk-check"}, nav.Paths())

	sess, err := repo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "t1", sess.Token)
}

func TestRun_NonInteractiveMismatch(t *testing.T) {
	var hits atomic.Int32
	svc, _, nav := newTestService(t, func(w http.ResponseWriter, r *http.Request) { hits.Add(1) })
	p, out := testPrompter("")
	f := form.New()
	preset := map[domain.Field]string{
		domain.FieldFirstName:       "Ada",
		domain.FieldLastName:        "Lovelace",
		domain.FieldEmail:           "ada@example.com",
		domain.FieldPassword:        "abc123",
		domain.FieldConfirmPassword: "xyz999",
	}

	code := run(context.Background(), svc, f, p, preset, false)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Error: Passwords do not match.")
	assert.Equal(t, int32(0), hits.Load())
	assert.Empty(t, nav.Paths())
}
