package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tado/internal/config"
	"tado/internal/exitcode"
	"tado/internal/service"
	"tado/internal/session"
	"tado/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command (the create-task flow).
type AddCmd struct {
	desc string
}

// SetDesc sets the description (for testing).
func (c *AddCmd) SetDesc(desc string) {
	c.desc = desc
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "tado add [--desc <text>] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.desc, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	if strings.TrimSpace(c.desc) == "" {
		fmt.Fprintln(errOut, "error: description required (use --desc)")
		return exitcode.UserError
	}

	form := task.Form{Title: title, Description: c.desc}
	flows := newFlows(cfg, svc, out, errOut)
	if err := flows.Create(ctx, form); err != nil {
		if errors.Is(err, task.ErrFormInvalid) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.BackendError
	}
	return exitcode.Success
}
