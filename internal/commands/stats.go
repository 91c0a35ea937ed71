package commands

import (
	"context"
	"flag"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/output"
	"todolist/internal/todo"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd prints the task counts.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Print total, completed and pending counts" }
func (c *StatsCmd) Usage() string     { return "todo stats" }
func (c *StatsCmd) NeedsStore() bool  { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, store *todo.Store, args []string, out, errOut io.Writer) int {
	if extraArgs(errOut, args) {
		return exitcode.UserError
	}
	output.FormatStats(out, store.Counts())
	return exitcode.Success
}
