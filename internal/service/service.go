// Package service defines the backend-agnostic interface for auth and task
// operations.
package service

import "context"

// Service defines the interface for backend operations.
// All remote API calls go through this interface.
// Commands never build HTTP requests directly.
type Service interface {
	// Login authenticates by email. needsRegistration is true when the
	// backend answered with no content, meaning the email has no account yet.
	Login(ctx context.Context, email string) (user User, needsRegistration bool, err error)

	// Register creates an account for the email and returns it.
	Register(ctx context.Context, email string) (User, error)

	// ListTasks returns all tasks for the current session in API order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a new task. The id is assigned by the API.
	CreateTask(ctx context.Context, form TaskForm) (Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, id string) error
}
