// Package auth runs the login, register and logout flows: validate the form
// locally, call the API, then start or end the session.
package auth

import (
	"context"
	"errors"
	"fmt"

	"taskwave/internal/logging"
	"taskwave/internal/service"
	"taskwave/internal/session"
	"taskwave/internal/validate"
)

// Messages shown to the user.
const (
	MsgLoginFailed    = "Login failed"
	MsgRegisterFailed = "Registration failed"
	MsgRegistered     = "Registration successful! You can now manage your tasks."
)

// Error is an API failure during login or register. Message is the server's
// text when it sent one, otherwise a generic fallback.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Flow ties the API to the live session.
type Flow struct {
	svc      service.Service
	sessions *session.Manager
}

// New returns a Flow.
func New(svc service.Service, sessions *session.Manager) *Flow {
	return &Flow{svc: svc, sessions: sessions}
}

// Login validates creds, logs in and starts the session.
// Validation failures are *validate.Error and send nothing.
func (f *Flow) Login(ctx context.Context, creds service.Credentials) (session.Session, error) {
	if err := validate.Struct(creds); err != nil {
		return session.Session{}, err
	}
	res, err := f.svc.Login(ctx, creds)
	if err != nil {
		logging.Component("auth").WithError(err).Info("login rejected")
		return session.Session{}, apiError(err, MsgLoginFailed)
	}
	return f.start(res)
}

// Register validates reg, creates the account and starts the session.
// Every field is checked for presence before the email format.
func (f *Flow) Register(ctx context.Context, reg service.Registration) (session.Session, error) {
	if err := validate.StructBlankFirst(reg); err != nil {
		return session.Session{}, err
	}
	res, err := f.svc.Register(ctx, reg)
	if err != nil {
		logging.Component("auth").WithError(err).Info("registration rejected")
		return session.Session{}, apiError(err, MsgRegisterFailed)
	}
	return f.start(res)
}

// Logout ends the session. Logging out twice is not an error.
func (f *Flow) Logout() error {
	return f.sessions.End()
}

func (f *Flow) start(res service.AuthResult) (session.Session, error) {
	if res.Token == "" {
		return session.Session{}, errors.New("server returned no token")
	}
	sess, err := f.sessions.Start(res.Token, res.UserName)
	if err != nil {
		return session.Session{}, fmt.Errorf("saving session: %w", err)
	}
	logging.Component("auth").WithField("user", res.UserName).Debug("session started")
	return sess, nil
}

func apiError(err error, fallback string) error {
	msg := fallback
	var apiErr *service.APIError
	if errors.As(err, &apiErr) && apiErr.Status != 0 && apiErr.Message != "" {
		msg = apiErr.Message
	}
	return &Error{Message: msg, Err: err}
}
