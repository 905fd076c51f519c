package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/signup-flow/internal/events"
	"github.com/spec-kit/signup-flow/internal/observability"
)

// OutcomeRecorder turns flow events into metrics and log lines.
type OutcomeRecorder struct {
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewOutcomeRecorder creates the recorder.
func NewOutcomeRecorder(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *OutcomeRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OutcomeRecorder{dispatcher: dispatcher, metrics: metrics, logger: logger}
}

// RegisterHandlers subscribes to events.
func (r *OutcomeRecorder) RegisterHandlers() {
	if r.dispatcher == nil {
		return
	}
	r.dispatcher.Subscribe(events.EventSubmissionResolved, r.handleSubmissionResolved)
	r.dispatcher.Subscribe(events.EventSessionEstablished, r.handleSessionEstablished)
}

func (r *OutcomeRecorder) handleSubmissionResolved(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SubmissionResolvedPayload)
	if !ok {
		return nil
	}
	r.metrics.RecordOutcome(payload.Outcome, payload.Duration)
	r.logger.Debug("SubmissionResolved",
		zap.String("event_id", event.ID),
		zap.String("outcome", string(payload.Outcome)),
		zap.Int("status", payload.HTTPStatus),
		zap.Duration("took", payload.Duration))
	return nil
}

func (r *OutcomeRecorder) handleSessionEstablished(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SessionEstablishedPayload)
	if !ok {
		return nil
	}
	r.logger.Debug("SessionEstablished",
		zap.String("event_id", event.ID),
		zap.String("user_id", payload.UserID),
		zap.String("destination", payload.Destination))
	return nil
}
