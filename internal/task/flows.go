package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tado/internal/service"
	"tado/internal/toast"
)

// Form is the transient input record for a create/edit interaction.
type Form struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	IsEditing   bool
}

func (f Form) valid() bool {
	return strings.TrimSpace(f.Title) != "" && strings.TrimSpace(f.Description) != ""
}

// ErrFormInvalid reports a create/edit form failing local validation.
// The API is never contacted for an invalid form.
var ErrFormInvalid = errors.New("title and description required")

// Flows reconciles local task state with the backend for each mutation.
// Outcomes surface as toast notifications; errors are also returned so a
// caller can keep a form open for retry.
type Flows struct {
	svc    service.Service
	store  *Store
	toasts toast.Notifier
}

// NewFlows wires the mutation flows to a backend, a store and a notifier.
func NewFlows(svc service.Service, store *Store, toasts toast.Notifier) *Flows {
	return &Flows{svc: svc, store: store, toasts: toasts}
}

// Store returns the underlying task store.
func (f *Flows) Store() *Store {
	return f.store
}

// Refresh reloads the full task list. On failure the previous list is kept
// and an error toast fires.
func (f *Flows) Refresh(ctx context.Context) error {
	if err := f.store.Load(ctx, f.svc); err != nil {
		f.toasts.Error("failed to load tasks")
		return err
	}
	return nil
}

// Create submits a create form. Reconciliation is pessimistic: success
// triggers a full reload rather than a local insert, trusting the server's
// view over any locally assumed shape. On failure the error is returned so
// the form stays open for retry.
func (f *Flows) Create(ctx context.Context, form Form) error {
	if !form.valid() {
		return ErrFormInvalid
	}
	_, err := f.svc.CreateTask(ctx, service.TaskForm{
		Title:       form.Title,
		Description: form.Description,
		Completed:   form.Completed,
	})
	if err != nil {
		f.toasts.Error("failed to create task")
		return err
	}
	f.toasts.Success("task created")
	return f.Refresh(ctx)
}

// Update submits an edit form, patching the merged fields with the task id,
// then reloads on success.
func (f *Flows) Update(ctx context.Context, form Form) error {
	if form.ID == "" {
		return fmt.Errorf("task id required")
	}
	if !form.valid() {
		return ErrFormInvalid
	}
	_, err := f.svc.UpdateTask(ctx, service.TaskPatch{
		ID:          form.ID,
		Title:       &form.Title,
		Description: &form.Description,
		Completed:   &form.Completed,
	})
	if err != nil {
		f.toasts.Error("failed to update task")
		return err
	}
	f.toasts.Success("task updated")
	return f.Refresh(ctx)
}

// Toggle flips the completed state optimistically: the local flip happens
// first, then the update is confirmed with the server's value or reverted
// on failure.
func (f *Flows) Toggle(ctx context.Context, id string) error {
	staged, err := f.store.StageToggle(id)
	if err != nil {
		return err
	}

	completed := staged.Completed
	updated, err := f.svc.UpdateTask(ctx, service.TaskPatch{ID: id, Completed: &completed})
	if err != nil {
		f.store.RevertToggle(id)
		f.toasts.Error("failed to update task")
		return err
	}

	f.store.ConfirmToggle(id, updated.Completed)
	return nil
}

// Delete removes the task on the server first; local state changes only
// after the server confirms.
func (f *Flows) Delete(ctx context.Context, id string) error {
	if err := f.svc.DeleteTask(ctx, id); err != nil {
		f.toasts.Error("failed to delete task")
		return err
	}
	f.store.Remove(id)
	f.toasts.Success("task deleted")
	return nil
}
