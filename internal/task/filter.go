// Package task holds the client's copy of the task list and the flows that
// reconcile it with the backend.
package task

import "tado/internal/service"

// Filter selects tasks by completion status.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Matches reports whether the task passes the filter.
// An unrecognized filter behaves like FilterAll.
func Matches(t service.Task, f Filter) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

// Apply returns the tasks matching f, preserving order and membership
// semantics of the input slice. Pure and total.
func Apply(tasks []service.Task, f Filter) []service.Task {
	if f == FilterAll || f == "" {
		return tasks
	}
	var result []service.Task
	for _, t := range tasks {
		if Matches(t, f) {
			result = append(result, t)
		}
	}
	return result
}

// Completed counts completed tasks. Recomputed from the slice every time,
// never maintained as a separate counter.
func Completed(tasks []service.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}
