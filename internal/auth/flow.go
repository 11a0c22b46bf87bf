// Package auth implements the email login flow with implicit registration.
package auth

import (
	"context"
	"errors"
	"regexp"

	"tado/internal/service"
	"tado/internal/session"
)

// State is a phase of the login flow.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateAuthenticated
	StateNeedsRegistration
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateAuthenticated:
		return "authenticated"
	case StateNeedsRegistration:
		return "needs-registration"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// emailPattern matches a standard email shape. Submission is blocked locally
// when the address does not match; the API is never contacted.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ErrInvalidEmail reports an address that fails local validation.
var ErrInvalidEmail = errors.New("invalid email")

// ValidEmail reports whether the address passes local validation.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Flow drives login and implicit registration against the backend, persisting
// the session on success. The session store is injected at construction; the
// flow never reaches for ambient state.
type Flow struct {
	svc      service.Service
	sessions *session.Store
	state    State
	email    string
}

// NewFlow creates a flow in the idle state.
func NewFlow(svc service.Service, sessions *session.Store) *Flow {
	return &Flow{svc: svc, sessions: sessions, state: StateIdle}
}

// State returns the current flow state.
func (f *Flow) State() State {
	return f.state
}

// Submit validates the email and attempts login. It returns the new state:
// Authenticated when the backend knows the email (session persisted),
// NeedsRegistration when it answered with no content, Failed on any
// transport or API error. The session store is only written on success.
func (f *Flow) Submit(ctx context.Context, email string) (State, error) {
	if !ValidEmail(email) {
		return f.state, ErrInvalidEmail
	}

	f.email = email
	f.state = StateSubmitting

	user, needsRegistration, err := f.svc.Login(ctx, email)
	if err != nil {
		f.state = StateFailed
		return f.state, err
	}
	if needsRegistration {
		f.state = StateNeedsRegistration
		return f.state, nil
	}

	if err := f.establish(user); err != nil {
		f.state = StateFailed
		return f.state, err
	}
	f.state = StateAuthenticated
	return f.state, nil
}

// ConfirmRegistration registers the previously submitted email. On failure
// the flow stays in NeedsRegistration so the step can be retried.
func (f *Flow) ConfirmRegistration(ctx context.Context) (State, error) {
	if f.state != StateNeedsRegistration {
		return f.state, errors.New("no registration pending")
	}

	user, err := f.svc.Register(ctx, f.email)
	if err != nil {
		return f.state, err
	}
	if err := f.establish(user); err != nil {
		return f.state, err
	}
	f.state = StateAuthenticated
	return f.state, nil
}

// establish persists the session for the user.
func (f *Flow) establish(user service.User) error {
	email := user.Email
	if email == "" {
		email = f.email
	}
	return f.sessions.Save(session.Session{UserID: user.ID, UserEmail: email})
}
