package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tado/internal/config"
	"tado/internal/exitcode"
	"tado/internal/service"
	"tado/internal/session"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the current session identity. Reads only local state.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the logged-in user" }
func (c *WhoamiCmd) Usage() string     { return "tado whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	current, err := sess.Load()
	if err != nil {
		fmt.Fprintf(errOut, "error: session storage: %v\n", err)
		return exitcode.AuthError
	}
	if current.UserID == "" {
		fmt.Fprintln(errOut, "error: not logged in (run: tado login <email>)")
		return exitcode.AuthError
	}

	fmt.Fprintf(out, "%s (%s)\n", current.UserEmail, current.UserID)
	return exitcode.Success
}
