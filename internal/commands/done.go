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
	"tado/internal/toast"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd marks a task completed via the toggle flow.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "tado done [common flags] <ref>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, svc, args, true, out, errOut)
}

// UndoCmd marks a completed task pending again.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return nil }
func (c *UndoCmd) Synopsis() string  { return "Mark a task pending again" }
func (c *UndoCmd) Usage() string     { return "tado undo [common flags] <ref>" }
func (c *UndoCmd) NeedsAuth() bool   { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, svc, args, false, out, errOut)
}

// runToggle is the shared implementation for done and undo. The toggle is
// optimistic: staged locally, confirmed with the server's value, reverted
// on failure.
func runToggle(ctx context.Context, cfg *config.Config, svc service.Service, args []string, wantCompleted bool, out, errOut io.Writer) int {
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

	t, tasks, err := findTaskByNumber(ctx, svc, num)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if t.Completed == wantCompleted {
		if !cfg.Quiet {
			if wantCompleted {
				fmt.Fprintln(out, "already completed")
			} else {
				fmt.Fprintln(out, "already pending")
			}
		}
		return exitcode.Success
	}

	store := task.NewStore()
	store.Replace(tasks)
	flows := task.NewFlows(svc, store, &toast.Writer{Out: out, Err: errOut, Quiet: cfg.Quiet})
	if err := flows.Toggle(ctx, t.ID); err != nil {
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
