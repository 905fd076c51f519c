package events

import (
	"time"

	"github.com/spec-kit/signup-flow/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubmissionResolved EventType = "submission_resolved"
	EventSessionEstablished EventType = "session_established"
)

// Event is emitted by the registration flow. Payloads never carry passwords or tokens.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// SubmissionResolvedPayload describes one finished submit attempt.
type SubmissionResolvedPayload struct {
	Outcome    domain.OutcomeKind `json:"outcome"`
	HTTPStatus int                `json:"http_status,omitempty"`
	Duration   time.Duration      `json:"duration"`
}

// SessionEstablishedPayload payload.
type SessionEstablishedPayload struct {
	UserID      string `json:"user_id"`
	Destination string `json:"destination"`
}
