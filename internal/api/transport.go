package api

import "net/http"

// UserIDHeader is the header carrying the session's user identifier.
const UserIDHeader = "user-id"

// UserIDSource yields the session's user identifier, empty when logged out.
// Implemented by *session.Store.
type UserIDSource interface {
	UserID() (string, error)
}

// WithUserID returns req with the user-id header set to id, overwriting any
// existing value and leaving all other headers and the body untouched.
// An empty id returns req unchanged (same pointer).
func WithUserID(req *http.Request, id string) *http.Request {
	if id == "" {
		return req
	}
	clone := req.Clone(req.Context())
	clone.Header.Set(UserIDHeader, id)
	return clone
}

// transport attaches the current session identifier to outgoing requests.
type transport struct {
	base http.RoundTripper
	ids  UserIDSource
}

// NewTransport wraps base so every request carries the user-id header when a
// session is present. A failing session read fails the request: the policy is
// defer-to-caller, never a silent anonymous call.
func NewTransport(base http.RoundTripper, ids UserIDSource) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &transport{base: base, ids: ids}
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	id, err := t.ids.UserID()
	if err != nil {
		return nil, err
	}
	return t.base.RoundTrip(WithUserID(req, id))
}
