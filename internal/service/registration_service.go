package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/signup-flow/internal/config"
	"github.com/spec-kit/signup-flow/internal/domain"
	"github.com/spec-kit/signup-flow/internal/events"
	"github.com/spec-kit/signup-flow/internal/form"
)

// ErrSubmissionInFlight is returned when the form already has a pending submission.
var ErrSubmissionInFlight = errors.New("registration already in progress")

// Submitter performs one registration exchange.
type Submitter interface {
	Submit(ctx context.Context, input domain.RegistrationInput, endpointBase string) domain.Outcome
}

// SessionSink takes ownership of the token after a successful registration.
type SessionSink interface {
	EstablishSession(ctx context.Context, token, userID string) error
}

// Navigator moves the caller to another screen.
type Navigator interface {
	GoTo(path string)
}

// RegistrationDependencies encapsulates collaborators of the registration flow.
type RegistrationDependencies struct {
	Submitter  Submitter
	Sessions   SessionSink
	Navigator  Navigator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// Result is what the caller renders after a submit attempt.
type Result struct {
	Outcome     domain.Outcome
	Message     string
	Destination string
}

// RegistrationService drives a form from submit to session establishment.
type RegistrationService struct {
	submitter    Submitter
	sessions     SessionSink
	navigator    Navigator
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	endpointBase string
	destination  string
	messages     MessageCatalog
	now          func() time.Time
}

// NewRegistrationService builds the service.
func NewRegistrationService(cfg config.Config, deps RegistrationDependencies) *RegistrationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		submitter:    deps.Submitter,
		sessions:     deps.Sessions,
		navigator:    deps.Navigator,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
		endpointBase: cfg.Client.APIBaseURL,
		destination:  cfg.Client.PostRegistrationPath,
		messages:     MessagesFromConfig(cfg.Messages),
		now:          time.Now,
	}
}

// Messages exposes the catalog used to render outcomes.
func (s *RegistrationService) Messages() MessageCatalog {
	return s.messages
}

// Submit validates the form and, when valid, performs exactly one registration
// exchange. The displayed error of f is updated for every failure. The only
// returned errors are ErrSubmissionInFlight and a wrapped session failure.
func (s *RegistrationService) Submit(ctx context.Context, f *form.State) (Result, error) {
	if f.Submitting() {
		return Result{}, ErrSubmissionInFlight
	}

	if err := f.ValidateLocally(); err != nil {
		reason := err.Error()
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			reason = verr.Reason
		}
		out := domain.ValidationRejected(reason)
		return s.reject(ctx, f, out, 0), nil
	}

	if !f.BeginSubmit() {
		return Result{}, ErrSubmissionInFlight
	}
	defer f.EndSubmit()
	f.SetError("")

	// Once issued, a submission runs to completion.
	ctx = context.WithoutCancel(ctx)

	start := s.now()
	out := s.submitter.Submit(ctx, f.Input(), s.endpointBase)
	took := s.now().Sub(start)

	if !out.IsSuccess() {
		return s.reject(ctx, f, out, took), nil
	}
	s.publish(ctx, events.EventSubmissionResolved, events.SubmissionResolvedPayload{Outcome: out.Kind, Duration: took})

	if err := s.sessions.EstablishSession(ctx, out.Token, out.UserID); err != nil {
		msg := s.messages.SessionFailure
		f.SetError(msg)
		s.logger.Error("establish session failed", zap.String("user_id", out.UserID), zap.Error(err))
		return Result{Outcome: out, Message: msg}, fmt.Errorf("establish session: %w", err)
	}

	s.navigator.GoTo(s.destination)
	s.publish(ctx, events.EventSessionEstablished, events.SessionEstablishedPayload{UserID: out.UserID, Destination: s.destination})
	s.logger.Info("registration succeeded", zap.String("user_id", out.UserID), zap.String("destination", s.destination))

	return Result{Outcome: out, Message: s.messages.Success, Destination: s.destination}, nil
}

func (s *RegistrationService) reject(ctx context.Context, f *form.State, out domain.Outcome, took time.Duration) Result {
	msg := s.messages.Render(out)
	f.SetError(msg)

	fields := []zap.Field{zap.String("outcome", string(out.Kind))}
	if out.HTTPStatus != 0 {
		fields = append(fields, zap.Int("status", out.HTTPStatus))
	}
	if out.Cause != nil {
		fields = append(fields, zap.Error(out.Cause))
	}
	s.logger.Info("registration rejected", fields...)

	s.publish(ctx, events.EventSubmissionResolved, events.SubmissionResolvedPayload{
		Outcome:    out.Kind,
		HTTPStatus: out.HTTPStatus,
		Duration:   took,
	})
	return Result{Outcome: out, Message: msg}
}

func (s *RegistrationService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: s.now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}
