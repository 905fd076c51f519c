package service

import (
	"strconv"
	"strings"

	"github.com/spec-kit/signup-flow/internal/config"
	"github.com/spec-kit/signup-flow/internal/domain"
)

// MessageCatalog maps outcome kinds to the text shown to the user.
// Validation and server rejections are shown verbatim.
type MessageCatalog struct {
	Success        string
	Malformed      string // the first %d is replaced by the HTTP status
	Unreachable    string
	SessionFailure string
}

// DefaultMessages returns the built-in wording.
func DefaultMessages() MessageCatalog {
	return MessageCatalog{
		Success:        "Registration successful!",
		Malformed:      "Server Error: %d. Backend not responding with JSON.",
		Unreachable:    "Cannot connect to server. The backend may be starting up (cold start) or your connection is down. Please try again shortly.",
		SessionFailure: "Registration succeeded but the session could not be started. Please log in.",
	}
}

// MessagesFromConfig overlays configured templates on the defaults.
func MessagesFromConfig(cfg config.MessagesConfig) MessageCatalog {
	c := DefaultMessages()
	if cfg.Success != "" {
		c.Success = cfg.Success
	}
	if cfg.Malformed != "" {
		c.Malformed = cfg.Malformed
	}
	if cfg.Unreachable != "" {
		c.Unreachable = cfg.Unreachable
	}
	if cfg.SessionFailure != "" {
		c.SessionFailure = cfg.SessionFailure
	}
	return c
}

// Render returns the display text for an outcome.
func (c MessageCatalog) Render(out domain.Outcome) string {
	switch out.Kind {
	case domain.OutcomeSuccess:
		return c.Success
	case domain.OutcomeValidationRejected:
		return out.Reason
	case domain.OutcomeServerRejected:
		return out.Message
	case domain.OutcomeMalformedResponse:
		return strings.Replace(c.Malformed, "%d", strconv.Itoa(out.HTTPStatus), 1)
	case domain.OutcomeNetworkUnreachable:
		return c.Unreachable
	default:
		return c.Unreachable
	}
}
