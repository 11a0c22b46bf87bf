// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tado/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// SeedTime is the created-at timestamp of seeded tasks, fixed for
// deterministic output.
var SeedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	users  map[string]service.User // email -> user
	tasks  []service.Task
	nextID int

	// Call counters
	LoginCalls    int
	RegisterCalls int
	ListCalls     int
	CreateCalls   int
	UpdateCalls   int
	DeleteCalls   int

	// Error injection for testing
	LoginErr    error
	RegisterErr error
	ListErr     error
	CreateErr   error
	UpdateErr   error
	DeleteErr   error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		users:  make(map[string]service.User),
		nextID: 1,
	}
}

// AddUser registers a known account.
func (f *FakeService) AddUser(id, email, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = service.User{ID: id, Email: email, Name: name}
}

// AddTask seeds a task with a fixed creation time.
func (f *FakeService) AddTask(id, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       title,
		Description: title + " details",
		Completed:   completed,
		CreatedAt:   SeedTime,
	})
}

// Tasks returns a copy of the current task list (for assertions).
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Login implements service.Service. Unknown emails report
// needsRegistration, mirroring the backend's no-content response.
func (f *FakeService) Login(ctx context.Context, email string) (service.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	if f.LoginErr != nil {
		return service.User{}, false, f.LoginErr
	}
	user, ok := f.users[email]
	if !ok {
		return service.User{}, true, nil
	}
	return user, false, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, email string) (service.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	if f.RegisterErr != nil {
		return service.User{}, f.RegisterErr
	}
	user := service.User{ID: fmt.Sprintf("u%d", f.nextID), Email: email}
	f.nextID++
	f.users[email] = user
	return user, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, form service.TaskForm) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	t := service.Task{
		ID:          fmt.Sprintf("t%d", f.nextID),
		Title:       form.Title,
		Description: form.Description,
		Completed:   form.Completed,
		CreatedAt:   SeedTime,
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, patch service.TaskPatch) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	for i, t := range f.tasks {
		if t.ID != patch.ID {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.Description != nil {
			f.tasks[i].Description = *patch.Description
		}
		if patch.Completed != nil {
			f.tasks[i].Completed = *patch.Completed
		}
		f.tasks[i].UpdatedAt = SeedTime.Add(time.Hour)
		return f.tasks[i], nil
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
