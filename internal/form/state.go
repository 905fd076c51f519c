package form

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spec-kit/signup-flow/internal/domain"
)

// ErrUnknownField is returned by SetField for names outside domain.Fields.
var ErrUnknownField = errors.New("unknown form field")

// MsgPasswordMismatch is shown when the two password inputs differ.
const MsgPasswordMismatch = "Passwords do not match."

// ValidationError describes a local rejection of the form contents.
type ValidationError struct {
	Field  domain.Field
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Option customizes a State.
type Option func(*State)

// WithStrictValidation enables the required, email and minimum-length rules
// on top of the password confirmation check.
func WithStrictValidation(enabled bool) Option {
	return func(s *State) {
		s.strict = enabled
	}
}

// State holds the registration form fields and its transient UI state.
// It is safe for concurrent use.
type State struct {
	mu         sync.Mutex
	input      domain.RegistrationInput
	errMsg     string
	submitting bool
	strict     bool
}

// New returns an empty form.
func New(opts ...Option) *State {
	s := &State{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetField assigns one field and clears the displayed error, whichever field it belonged to.
func (s *State) SetField(name domain.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case domain.FieldFirstName:
		s.input.FirstName = value
	case domain.FieldLastName:
		s.input.LastName = value
	case domain.FieldEmail:
		s.input.Email = value
	case domain.FieldPassword:
		s.input.Password = value
	case domain.FieldConfirmPassword:
		s.input.ConfirmPassword = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	s.errMsg = ""
	return nil
}

// Input returns a copy of the current field values.
func (s *State) Input() domain.RegistrationInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// ValidateLocally checks the form before any network call.
func (s *State) ValidateLocally() error {
	s.mu.Lock()
	input, strict := s.input, s.strict
	s.mu.Unlock()

	if strict {
		if err := checkRules(input); err != nil {
			return err
		}
	}
	if input.Password != input.ConfirmPassword {
		return &ValidationError{Field: domain.FieldConfirmPassword, Reason: MsgPasswordMismatch}
	}
	return nil
}

// BeginSubmit marks the form as submitting. It returns false when a submission is already in flight.
func (s *State) BeginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

// EndSubmit clears the submitting flag.
func (s *State) EndSubmit() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

// Submitting reports whether the submit control should be disabled.
func (s *State) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Error returns the message currently displayed in the error banner.
func (s *State) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// SetError replaces the displayed error. An empty message hides the banner.
func (s *State) SetError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}
