// Package api implements service.Service against the remote to-do REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tado/internal/config"
	"tado/internal/service"
	"tado/pkg/logger"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	requestIDHeader = "X-Request-Id"
)

// Client implements service.Service over the remote REST API.
type Client struct {
	baseURL string
	ids     UserIDSource
	http    *http.Client
	log     *zap.Logger
}

// New creates a client for the API at cfg.APIURL. Every request is augmented
// with the session identifier from ids. log may be nil.
func New(cfg *config.Config, ids UserIDSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		ids:     ids,
		http:    &http.Client{Transport: NewTransport(nil, ids)},
		log:     log,
	}
}

type wireUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"nombre"`
}

func (u wireUser) user() service.User {
	return service.User{ID: u.ID, Email: u.Email, Name: u.Name}
}

// wireTime is the Firestore-style timestamp shape the API emits.
type wireTime struct {
	Seconds int64 `json:"_seconds"`
	Nanos   int64 `json:"_nanoseconds"`
}

func (t wireTime) time() time.Time {
	if t.Seconds == 0 && t.Nanos == 0 {
		return time.Time{}
	}
	return time.Unix(t.Seconds, t.Nanos).UTC()
}

type wireTask struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   wireTime  `json:"createdAt"`
	UpdatedAt   *wireTime `json:"updatedAt"`
}

func (w wireTask) task() service.Task {
	t := service.Task{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Completed:   w.Completed,
		CreatedAt:   w.CreatedAt.time(),
	}
	if w.UpdatedAt != nil {
		t.UpdatedAt = w.UpdatedAt.time()
	}
	return t
}

type emailBody struct {
	Email string `json:"email"`
}

type createBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	UserID      string `json:"userId"`
}

type patchBody struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Login authenticates by email. A no-content response means the email has no
// account yet and registration is needed.
func (c *Client) Login(ctx context.Context, email string) (service.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var u wireUser
	status, err := c.call(ctx, http.MethodPost, "/auth/login", emailBody{Email: email}, &u)
	if err != nil {
		return service.User{}, false, err
	}
	if status == http.StatusNoContent {
		return service.User{}, true, nil
	}
	return u.user(), false, nil
}

// Register creates an account for the email.
func (c *Client) Register(ctx context.Context, email string) (service.User, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var u wireUser
	if _, err := c.call(ctx, http.MethodPost, "/auth/register", emailBody{Email: email}, &u); err != nil {
		return service.User{}, err
	}
	return u.user(), nil
}

// ListTasks returns all tasks for the current session in API order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var ws []wireTask
	if _, err := c.call(ctx, http.MethodGet, "/tasks", nil, &ws); err != nil {
		return nil, err
	}
	result := make([]service.Task, len(ws))
	for i, w := range ws {
		result[i] = w.task()
	}
	return result, nil
}

// CreateTask creates a new task. The API assigns the id.
func (c *Client) CreateTask(ctx context.Context, form service.TaskForm) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	uid, err := c.ids.UserID()
	if err != nil {
		return service.Task{}, err
	}

	var w wireTask
	body := createBody{
		Title:       form.Title,
		Description: form.Description,
		Completed:   form.Completed,
		UserID:      uid,
	}
	if _, err := c.call(ctx, http.MethodPost, "/tasks", body, &w); err != nil {
		return service.Task{}, err
	}
	return w.task(), nil
}

// UpdateTask applies a partial update and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, patch service.TaskPatch) (service.Task, error) {
	if patch.ID == "" {
		return service.Task{}, fmt.Errorf("task id required")
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var w wireTask
	body := patchBody{
		ID:          patch.ID,
		Title:       patch.Title,
		Description: patch.Description,
		Completed:   patch.Completed,
	}
	path := "/tasks/" + url.PathEscape(patch.ID)
	if _, err := c.call(ctx, http.MethodPatch, path, body, &w); err != nil {
		return service.Task{}, err
	}
	return w.task(), nil
}

// DeleteTask deletes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	path := "/tasks/" + url.PathEscape(id)
	_, err := c.call(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// call issues one request and decodes the response into out when provided.
// out is left untouched on no-content responses.
func (c *Client) call(ctx context.Context, method, path string, body, out any) (int, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)

	log := logger.WithRequestID(logger.ContextWithRequestID(ctx, reqID), c.log)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return 0, wrapError(err)
	}
	defer resp.Body.Close()

	log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, wrapError(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("invalid response body: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// wrapError maps transport and status errors to user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	// Check for timeout
	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	// Check for auth errors
	if strings.Contains(errStr, "status 401") || strings.Contains(errStr, "status 403") {
		return fmt.Errorf("session rejected (run: tado login <email>)")
	}

	// Check for not found
	if strings.Contains(errStr, "status 404") {
		return fmt.Errorf("not found")
	}

	return err
}
