package commands

import (
	"context"
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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. The form is pre-filled from the
// task's current fields; flags override, and the merged result is patched
// with the task id.
type EditCmd struct {
	title string
	desc  string
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title = title
}

// SetDesc sets the new description (for testing).
func (c *EditCmd) SetDesc(desc string) {
	c.desc = desc
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string     { return "tado edit [--title <text>] [--desc <text>] <ref>" }
func (c *EditCmd) NeedsAuth() bool   { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.title, "t", "", "")
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.desc, "d", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}
	if num < 1 {
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		return exitcode.UserError
	}

	if c.title == "" && c.desc == "" {
		fmt.Fprintln(errOut, "error: nothing to edit (use --title or --desc)")
		return exitcode.UserError
	}

	t, _, err := findTaskByNumber(ctx, svc, num)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	form := task.Form{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		IsEditing:   true,
	}
	if c.title != "" {
		form.Title = c.title
	}
	if c.desc != "" {
		form.Description = c.desc
	}

	flows := newFlows(cfg, svc, out, errOut)
	if err := flows.Update(ctx, form); err != nil {
		return exitcode.BackendError
	}
	return exitcode.Success
}
