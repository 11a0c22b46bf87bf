package task_test

import (
	"context"
	"errors"
	"testing"

	"tado/internal/task"
	"tado/internal/testutil"
)

// recorder captures toast notifications for assertions.
type recorder struct {
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recorder) Error(msg string)   { r.errors = append(r.errors, msg) }

func newTestFlows(svc *testutil.FakeService) (*task.Flows, *recorder) {
	toasts := &recorder{}
	return task.NewFlows(svc, task.NewStore(), toasts), toasts
}

func TestRefresh(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", false)
	flows, toasts := newTestFlows(svc)

	if err := flows.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := flows.Store().TotalCount(); got != 1 {
		t.Errorf("expected 1 task, got %d", got)
	}
	if len(toasts.errors) != 0 {
		t.Errorf("expected no error toasts, got %v", toasts.errors)
	}
}

func TestRefreshFailureToasts(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListErr = errors.New("connection refused")
	flows, toasts := newTestFlows(svc)

	if err := flows.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	want := []string{"failed to load tasks"}
	if len(toasts.errors) != 1 || toasts.errors[0] != want[0] {
		t.Errorf("expected %v, got %v", want, toasts.errors)
	}
}

func TestCreateReloadsOnSuccess(t *testing.T) {
	svc := testutil.NewFakeService()
	flows, toasts := newTestFlows(svc)

	form := task.Form{Title: "Buy milk", Description: "2%"}
	if err := flows.Create(context.Background(), form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pessimistic reconciliation: the store holds the server's list, not a
	// local insert.
	if svc.ListCalls != 1 {
		t.Errorf("expected 1 reload after create, got %d", svc.ListCalls)
	}
	if got := flows.Store().TotalCount(); got != 1 {
		t.Errorf("expected 1 task after reload, got %d", got)
	}
	if len(toasts.successes) != 1 || toasts.successes[0] != "task created" {
		t.Errorf("expected success toast, got %v", toasts.successes)
	}
}

func TestCreateInvalidFormSkipsAPI(t *testing.T) {
	svc := testutil.NewFakeService()
	flows, toasts := newTestFlows(svc)

	tests := []task.Form{
		{Title: "", Description: "2%"},
		{Title: "Buy milk", Description: ""},
		{Title: "   ", Description: "2%"},
	}
	for _, form := range tests {
		if err := flows.Create(context.Background(), form); !errors.Is(err, task.ErrFormInvalid) {
			t.Errorf("form %+v: expected ErrFormInvalid, got %v", form, err)
		}
	}
	if svc.CreateCalls != 0 {
		t.Errorf("API must not be contacted for invalid forms, got %d calls", svc.CreateCalls)
	}
	if len(toasts.errors) != 0 {
		t.Errorf("validation errors are local, not toasts, got %v", toasts.errors)
	}
}

func TestCreateFailureSkipsReload(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateErr = errors.New("connection refused")
	flows, toasts := newTestFlows(svc)

	form := task.Form{Title: "Buy milk", Description: "2%"}
	if err := flows.Create(context.Background(), form); err == nil {
		t.Fatal("expected error")
	}
	if svc.ListCalls != 0 {
		t.Errorf("failed create must not reload, got %d list calls", svc.ListCalls)
	}
	if len(toasts.errors) != 1 || toasts.errors[0] != "failed to create task" {
		t.Errorf("expected failure toast, got %v", toasts.errors)
	}
}

func TestUpdate(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", false)
	flows, toasts := newTestFlows(svc)

	form := task.Form{ID: "t1", Title: "Buy oat milk", Description: "barista", IsEditing: true}
	if err := flows.Update(context.Background(), form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tasks := svc.Tasks()
	if tasks[0].Title != "Buy oat milk" || tasks[0].Description != "barista" {
		t.Errorf("unexpected task after update: %+v", tasks[0])
	}
	if svc.ListCalls != 1 {
		t.Errorf("expected reload after update, got %d list calls", svc.ListCalls)
	}
	if len(toasts.successes) != 1 || toasts.successes[0] != "task updated" {
		t.Errorf("expected success toast, got %v", toasts.successes)
	}
}

func TestUpdateRequiresID(t *testing.T) {
	svc := testutil.NewFakeService()
	flows, _ := newTestFlows(svc)

	form := task.Form{Title: "Buy milk", Description: "2%"}
	if err := flows.Update(context.Background(), form); err == nil {
		t.Fatal("expected error for update without id")
	}
	if svc.UpdateCalls != 0 {
		t.Errorf("API must not be contacted without an id, got %d calls", svc.UpdateCalls)
	}
}

func TestToggleConfirms(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", false)
	flows, toasts := newTestFlows(svc)

	if err := flows.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if err := flows.Toggle(context.Background(), "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !flows.Store().Tasks()[0].Completed {
		t.Error("expected task completed locally")
	}
	if !svc.Tasks()[0].Completed {
		t.Error("expected task completed on the server")
	}
	if len(toasts.errors) != 0 {
		t.Errorf("expected no error toasts, got %v", toasts.errors)
	}
}

func TestToggleFailureReverts(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", false)
	flows, toasts := newTestFlows(svc)

	if err := flows.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	svc.UpdateErr = errors.New("connection refused")
	if err := flows.Toggle(context.Background(), "t1"); err == nil {
		t.Fatal("expected error")
	}

	// The optimistic flip is rolled back to the pre-toggle value.
	if flows.Store().Tasks()[0].Completed {
		t.Error("expected revert to pending")
	}
	if len(toasts.errors) != 1 || toasts.errors[0] != "failed to update task" {
		t.Errorf("expected failure toast, got %v", toasts.errors)
	}

	// Settled by the revert: the task can be toggled again.
	svc.UpdateErr = nil
	if err := flows.Toggle(context.Background(), "t1"); err != nil {
		t.Errorf("toggle after revert must be allowed, got %v", err)
	}
}

func TestTogglePatchesOnlyCompleted(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", false)
	flows, _ := newTestFlows(svc)

	if err := flows.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if err := flows.Toggle(context.Background(), "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A toggle must not rewrite title or description with local copies.
	got := svc.Tasks()[0]
	if got.Title != "Buy milk" || got.Description != "Buy milk details" {
		t.Errorf("toggle overwrote other fields: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", false)
	svc.AddTask("t2", "Call mom", true)
	flows, toasts := newTestFlows(svc)

	if err := flows.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if err := flows.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := flows.Store().TotalCount(); got != 1 {
		t.Errorf("expected 1 task locally, got %d", got)
	}
	if got := len(svc.Tasks()); got != 1 {
		t.Errorf("expected 1 task on the server, got %d", got)
	}
	if len(toasts.successes) != 1 || toasts.successes[0] != "task deleted" {
		t.Errorf("expected exactly one success toast, got %v", toasts.successes)
	}
}

func TestDeleteFailureKeepsLocalState(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", false)
	flows, toasts := newTestFlows(svc)

	if err := flows.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	svc.DeleteErr = errors.New("connection refused")
	if err := flows.Delete(context.Background(), "t1"); err == nil {
		t.Fatal("expected error")
	}

	if got := flows.Store().TotalCount(); got != 1 {
		t.Errorf("local state must be unchanged on failure, got %d tasks", got)
	}
	if len(toasts.errors) != 1 || toasts.errors[0] != "failed to delete task" {
		t.Errorf("expected failure toast, got %v", toasts.errors)
	}
}
