package service

import "time"

// User is an account as returned by the auth endpoints.
type User struct {
	ID    string
	Email string
	Name  string
}

// Task represents a single task item. Tasks are owned by the remote API;
// ids are assigned server-side, never by the client.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time // zero if never updated
}

// TaskForm carries the fields of a create submission.
type TaskForm struct {
	Title       string
	Description string
	Completed   bool
}

// TaskPatch is a partial update for a task. Nil fields are left unchanged.
type TaskPatch struct {
	ID          string
	Title       *string
	Description *string
	Completed   *bool
}
