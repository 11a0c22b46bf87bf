package task

import (
	"context"
	"errors"
	"sync"

	"tado/internal/service"
)

var (
	// ErrNotFound is returned when no task with the given id is held locally.
	ErrNotFound = errors.New("task not found")

	// ErrToggleInFlight rejects a second toggle on a task whose first toggle
	// has not settled yet.
	ErrToggleInFlight = errors.New("toggle already in flight")
)

// Snapshot is the view of the store delivered to subscribers.
type Snapshot struct {
	Tasks   []service.Task
	Loading bool
}

// Store holds the client's in-memory copy of the task list. Derived values
// are recomputed from the slice on demand. Subscribers get a snapshot after
// every state change; there is no hidden reactivity.
type Store struct {
	mu      sync.Mutex
	tasks   []service.Task
	loading bool
	loadGen uint64
	staged  map[string]bool // task id -> pre-toggle completed value
	subs    []func(Snapshot)
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{staged: make(map[string]bool)}
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn is called outside the store lock.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Tasks returns a copy of the current task list.
func (s *Store) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTasks(s.tasks)
}

// Loading reports whether a load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// TotalCount is the number of tasks held locally.
func (s *Store) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// CompletedCount is the number of completed tasks, recomputed on every call.
func (s *Store) CompletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Completed(s.tasks)
}

// Replace swaps the entire task list.
func (s *Store) Replace(tasks []service.Task) {
	s.mu.Lock()
	s.tasks = copyTasks(tasks)
	s.publishLocked()
}

// Load fetches the full task set from svc and replaces local state. While in
// flight the loading flag is set; on failure the prior list is retained.
// Overlapping loads are safe: a response belonging to a superseded load is
// discarded, so the newest load's response wins.
func (s *Store) Load(ctx context.Context, svc service.Service) error {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.loading = true
	s.publishLocked()

	tasks, err := svc.ListTasks(ctx)

	s.mu.Lock()
	if gen == s.loadGen {
		s.loading = false
		if err == nil {
			s.tasks = tasks
			s.staged = make(map[string]bool)
		}
	}
	s.publishLocked()

	return err
}

// StageToggle tentatively flips the completed field of the task and returns
// the staged task. The pre-toggle value is recorded for RevertToggle. A
// second toggle on the same task while one is in flight is rejected with
// ErrToggleInFlight.
func (s *Store) StageToggle(id string) (service.Task, error) {
	s.mu.Lock()
	if _, busy := s.staged[id]; busy {
		s.mu.Unlock()
		return service.Task{}, ErrToggleInFlight
	}
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return service.Task{}, ErrNotFound
	}
	s.staged[id] = s.tasks[i].Completed
	s.tasks[i].Completed = !s.tasks[i].Completed
	staged := s.tasks[i]
	s.publishLocked()
	return staged, nil
}

// ConfirmToggle settles a staged toggle with the server's completed value.
// Only the completed field is patched, so a concurrent edit to other fields
// is never overwritten with stale data.
func (s *Store) ConfirmToggle(id string, completed bool) {
	s.mu.Lock()
	delete(s.staged, id)
	if i := s.indexLocked(id); i >= 0 {
		s.tasks[i].Completed = completed
	}
	s.publishLocked()
}

// RevertToggle restores the pre-toggle completed value.
func (s *Store) RevertToggle(id string) {
	s.mu.Lock()
	prior, ok := s.staged[id]
	delete(s.staged, id)
	if i := s.indexLocked(id); ok && i >= 0 {
		s.tasks[i].Completed = prior
	}
	s.publishLocked()
}

// Remove deletes the task by id from local state. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	if i := s.indexLocked(id); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
	delete(s.staged, id)
	s.publishLocked()
}

// indexLocked finds the task position by id. Caller holds the lock.
func (s *Store) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// publishLocked snapshots state, releases the lock and fans out to
// subscribers. Caller must hold the lock; it is released on return.
func (s *Store) publishLocked() {
	snap := Snapshot{Tasks: copyTasks(s.tasks), Loading: s.loading}
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func copyTasks(tasks []service.Task) []service.Task {
	if tasks == nil {
		return nil
	}
	out := make([]service.Task, len(tasks))
	copy(out, tasks)
	return out
}
