package domain

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind string

const (
	OutcomeSuccess            OutcomeKind = "success"
	OutcomeValidationRejected OutcomeKind = "validation_rejected"
	OutcomeServerRejected     OutcomeKind = "server_rejected"
	OutcomeMalformedResponse  OutcomeKind = "malformed_response"
	OutcomeNetworkUnreachable OutcomeKind = "network_unreachable"
)

// Outcome is the classified result of one submit attempt. Only the fields of Kind are set.
type Outcome struct {
	Kind OutcomeKind

	// Success
	Token  string
	UserID string

	// ValidationRejected
	Reason string

	// ServerRejected
	Message string

	// MalformedResponse
	HTTPStatus int

	// NetworkUnreachable; kept for logs, never shown to the user.
	Cause error
}

func Success(token, userID string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Token: token, UserID: userID}
}

func ValidationRejected(reason string) Outcome {
	return Outcome{Kind: OutcomeValidationRejected, Reason: reason}
}

func ServerRejected(message string) Outcome {
	return Outcome{Kind: OutcomeServerRejected, Message: message}
}

func MalformedResponse(status int) Outcome {
	return Outcome{Kind: OutcomeMalformedResponse, HTTPStatus: status}
}

func NetworkUnreachable(cause error) Outcome {
	return Outcome{Kind: OutcomeNetworkUnreachable, Cause: cause}
}

// IsSuccess reports whether the attempt produced a session token.
func (o Outcome) IsSuccess() bool {
	return o.Kind == OutcomeSuccess
}
