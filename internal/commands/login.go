package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tado/internal/auth"
	"tado/internal/config"
	"tado/internal/exitcode"
	"tado/internal/service"
	"tado/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command: email login with an implicit
// registration step when the backend does not know the address.
type LoginCmd struct {
	yes bool
	in  io.Reader
}

// SetYes sets the yes flag (for testing).
func (c *LoginCmd) SetYes(yes bool) {
	c.yes = yes
}

// SetInput sets the confirmation input reader (for testing).
func (c *LoginCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in by email" }
func (c *LoginCmd) Usage() string     { return "tado login [--yes] <email>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	// The login route redirects to the task view when already authenticated.
	decision, err := session.GuardLogin(sess)
	if err != nil {
		fmt.Fprintf(errOut, "error: session storage: %v\n", err)
		return exitcode.AuthError
	}
	if !decision.Allow {
		current, err := sess.Load()
		if err != nil {
			fmt.Fprintf(errOut, "error: session storage: %v\n", err)
			return exitcode.AuthError
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "already logged in as %s\n", current.UserEmail)
		}
		return exitcode.Success
	}

	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	email := strings.TrimSpace(args[0])
	if !auth.ValidEmail(email) {
		fmt.Fprintf(errOut, "error: invalid email: %s\n", email)
		return exitcode.UserError
	}

	flow := auth.NewFlow(svc, sess)
	state, err := flow.Submit(ctx, email)
	if err != nil {
		fmt.Fprintf(errOut, "error: login failed: %v\n", err)
		return exitcode.BackendError
	}

	if state == auth.StateNeedsRegistration {
		if !c.yes {
			ok, err := confirm(c.input(), out, fmt.Sprintf("no account for %s, create one? [y/N]: ", email))
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				return exitcode.UserError
			}
			if !ok {
				fmt.Fprintln(out, "cancelled")
				return exitcode.UserError
			}
		}
		if _, err := flow.ConfirmRegistration(ctx); err != nil {
			fmt.Fprintf(errOut, "error: registration failed: %v\n", err)
			return exitcode.BackendError
		}
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", email)
	}
	return exitcode.Success
}

func (c *LoginCmd) input() io.Reader {
	if c.in != nil {
		return c.in
	}
	return os.Stdin
}
