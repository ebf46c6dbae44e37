// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
	"fmt"
)

// Service defines the interface for TaskWave backend operations.
// All REST calls go through this interface; commands and views never build
// HTTP requests themselves.
type Service interface {
	// Login exchanges credentials for a token and display name.
	Login(ctx context.Context, creds Credentials) (AuthResult, error)

	// Register creates an account and logs it in.
	Register(ctx context.Context, reg Registration) (AuthResult, error)

	// ListTasks returns the tasks visible to the session user, in API order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task owned by the session user.
	CreateTask(ctx context.Context, in TaskInput) (Task, error)

	// UpdateTask replaces the task with the given full object.
	UpdateTask(ctx context.Context, task Task) (Task, error)

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, id int) error
}

// APIError is the generic failure surfaced for non-2xx responses and
// transport errors. Status is 0 when no response was received.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is an API rejection of the token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.Status == 401 || apiErr.Status == 403)
}
