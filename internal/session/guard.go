package session

// Routes used by guard redirects.
const (
	RouteLogin = "/login"
	RouteTasks = "/tasks"
)

// Decision is the outcome of a guard: either allow, or deny with a redirect.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// GuardTasks gates entry to the task view: denied with a redirect to the
// login view unless a session is present. Storage errors propagate.
func GuardTasks(s *Store) (Decision, error) {
	ok, err := s.Authenticated()
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return Decision{RedirectTo: RouteLogin}, nil
	}
	return Decision{Allow: true}, nil
}

// GuardLogin gates entry to the login view: denied with a redirect to the
// task view when a session is already present. Exact complement of
// GuardTasks.
func GuardLogin(s *Store) (Decision, error) {
	ok, err := s.Authenticated()
	if err != nil {
		return Decision{}, err
	}
	if ok {
		return Decision{RedirectTo: RouteTasks}, nil
	}
	return Decision{Allow: true}, nil
}
