package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tado/internal/config"
	"tado/internal/exitcode"
	"tado/internal/output"
	"tado/internal/service"
	"tado/internal/session"
	"tado/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tado` (no args) and `tado list`.
type ListCmd struct {
	filter string
	long   bool
}

// SetFilter sets the filter value (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

// SetLong sets the long flag (for testing).
func (c *ListCmd) SetLong(long bool) {
	c.long = long
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tado list [--filter all|pending|completed] [--long]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
	fs.BoolVar(&c.long, "long", false, "")
	fs.BoolVar(&c.long, "l", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	flows := newFlows(cfg, svc, out, errOut)
	if err := flows.Refresh(ctx); err != nil {
		// The flow already fired the error toast.
		return exitcode.BackendError
	}

	store := flows.Store()
	tasks := store.Tasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	// Numbers are positions in unfiltered order so they stay valid as
	// references for done/undo/edit/rm regardless of the active filter.
	filter := task.Filter(c.filter)
	for i, t := range tasks {
		if !task.Matches(t, filter) {
			continue
		}
		if c.long {
			output.FormatTaskLong(out, i+1, t)
		} else {
			output.FormatTask(out, i+1, t)
		}
	}

	output.FormatSummary(out, store.CompletedCount(), store.TotalCount())
	return exitcode.Success
}
