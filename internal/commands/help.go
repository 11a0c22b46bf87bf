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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tado help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tado                                               List tasks
  tado list [common flags] [--filter <f>] [--long]   List tasks (filters: all, pending, completed)
  tado add [common flags] [--desc <text>] <title...>
  tado edit [common flags] [--title <text>] [--desc <text>] <ref>
  tado done [common flags] <ref>
  tado undo [common flags] <ref>
  tado rm [common flags] [--force] <ref>
  tado login [common flags] [--yes] <email>
  tado logout [common flags]
  tado whoami [common flags]
  tado help
  tado version

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override API base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
