package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tado/internal/commands"
	"tado/internal/config"
	"tado/internal/exitcode"
	"tado/internal/session"
	"tado/internal/testutil"
)

// runWithSession is like runCommand but exposes the session store so tests
// can seed and inspect it.
func runWithSession(t *testing.T, cmd commands.Command, svc *testutil.FakeService, sess *session.Store, args []string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir()}

	code = cmd.Run(context.Background(), cfg, sess, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func newSessionStore(t *testing.T) *session.Store {
	t.Helper()
	cfg := &config.Config{Dir: t.TempDir()}
	return session.NewStore(cfg.SessionPath())
}

// Tests for login command
func TestLoginKnownUser(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("u1", "ana@example.com", "Ana")
	sess := newSessionStore(t)

	cmd := &commands.LoginCmd{}
	stdout, stderr, code := runWithSession(t, cmd, svc, sess, []string{"ana@example.com"})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "logged in as ana@example.com\n" {
		t.Errorf("expected login confirmation, got %q", stdout)
	}

	saved, err := sess.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if saved.UserID != "u1" || saved.UserEmail != "ana@example.com" {
		t.Errorf("unexpected session: %+v", saved)
	}
	if svc.RegisterCalls != 0 {
		t.Errorf("known user must not register, got %d calls", svc.RegisterCalls)
	}
}

func TestLoginUnknownUserConfirmed(t *testing.T) {
	svc := testutil.NewFakeService()
	sess := newSessionStore(t)

	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader("y\n"))
	stdout, stderr, code := runWithSession(t, cmd, svc, sess, []string{"new@example.com"})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	expected := "no account for new@example.com, create one? [y/N]: logged in as new@example.com\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if svc.RegisterCalls != 1 {
		t.Errorf("expected 1 register call, got %d", svc.RegisterCalls)
	}

	saved, err := sess.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if saved.UserID == "" || saved.UserEmail != "new@example.com" {
		t.Errorf("unexpected session: %+v", saved)
	}
}

func TestLoginUnknownUserDeclined(t *testing.T) {
	svc := testutil.NewFakeService()
	sess := newSessionStore(t)

	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader("n\n"))
	stdout, _, code := runWithSession(t, cmd, svc, sess, []string{"new@example.com"})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasSuffix(stdout, "cancelled\n") {
		t.Errorf("expected cancelled, got %q", stdout)
	}
	if svc.RegisterCalls != 0 {
		t.Errorf("declined registration must not reach the API, got %d calls", svc.RegisterCalls)
	}

	ok, err := sess.Authenticated()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("no session must be written on decline")
	}
}

func TestLoginUnknownUserYesFlag(t *testing.T) {
	svc := testutil.NewFakeService()
	sess := newSessionStore(t)

	cmd := &commands.LoginCmd{}
	cmd.SetYes(true)
	stdout, _, code := runWithSession(t, cmd, svc, sess, []string{"new@example.com"})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "logged in as new@example.com\n" {
		t.Errorf("expected no prompt with --yes, got %q", stdout)
	}
	if svc.RegisterCalls != 1 {
		t.Errorf("expected 1 register call, got %d", svc.RegisterCalls)
	}
}

func TestLoginMissingEmail(t *testing.T) {
	cmd := &commands.LoginCmd{}
	_, stderr, code := runWithSession(t, cmd, testutil.NewFakeService(), newSessionStore(t), nil)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: email required\n" {
		t.Errorf("expected email error, got %q", stderr)
	}
}

func TestLoginInvalidEmail(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.LoginCmd{}
	_, stderr, code := runWithSession(t, cmd, svc, newSessionStore(t), []string{"not-an-email"})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid email: not-an-email\n" {
		t.Errorf("expected invalid email error, got %q", stderr)
	}
	if svc.LoginCalls != 0 {
		t.Errorf("API must not be contacted for an invalid email, got %d calls", svc.LoginCalls)
	}
}

func TestLoginAlreadyLoggedIn(t *testing.T) {
	svc := testutil.NewFakeService()
	sess := newSessionStore(t)
	if err := sess.Save(session.Session{UserID: "u1", UserEmail: "ana@example.com"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cmd := &commands.LoginCmd{}
	stdout, _, code := runWithSession(t, cmd, svc, sess, []string{"other@example.com"})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "already logged in as ana@example.com\n" {
		t.Errorf("expected already-logged-in notice, got %q", stdout)
	}
	if svc.LoginCalls != 0 {
		t.Errorf("no login attempt expected, got %d calls", svc.LoginCalls)
	}
}

func TestLoginBackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LoginErr = errConnRefused

	cmd := &commands.LoginCmd{}
	_, stderr, code := runWithSession(t, cmd, svc, newSessionStore(t), []string{"ana@example.com"})

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: login failed: connection refused\n" {
		t.Errorf("expected login failure, got %q", stderr)
	}
}

func TestLoginRegistrationError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.RegisterErr = errConnRefused

	cmd := &commands.LoginCmd{}
	cmd.SetYes(true)
	_, stderr, code := runWithSession(t, cmd, svc, newSessionStore(t), []string{"new@example.com"})

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: registration failed: connection refused\n" {
		t.Errorf("expected registration failure, got %q", stderr)
	}
}

// Tests for logout command
func TestLogout(t *testing.T) {
	sess := newSessionStore(t)
	if err := sess.Save(session.Session{UserID: "u1", UserEmail: "ana@example.com"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cmd := &commands.LogoutCmd{}
	stdout, stderr, code := runWithSession(t, cmd, nil, sess, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}

	ok, err := sess.Authenticated()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected session cleared")
	}
}

func TestLogoutNotLoggedIn(t *testing.T) {
	cmd := &commands.LogoutCmd{}
	stdout, _, code := runWithSession(t, cmd, nil, newSessionStore(t), nil)

	if code != exitcode.Success {
		t.Errorf("logout is unconditional, expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("expected notice, got %q", stdout)
	}
}

func TestLogoutTwice(t *testing.T) {
	sess := newSessionStore(t)
	if err := sess.Save(session.Session{UserID: "u1"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cmd := &commands.LogoutCmd{}
	if _, _, code := runWithSession(t, cmd, nil, sess, nil); code != exitcode.Success {
		t.Fatalf("first logout failed with code %d", code)
	}
	stdout, _, code := runWithSession(t, cmd, nil, sess, nil)

	if code != exitcode.Success {
		t.Errorf("second logout must succeed, got code %d", code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("expected notice, got %q", stdout)
	}
}
