package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/todo"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *RmCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todo rm [--force] <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, store *todo.Store, args []string, out, errOut io.Writer) int {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		return reportRefErr(errOut, err)
	}
	if extraArgs(errOut, rest) {
		return exitcode.UserError
	}
	task, err := ref.Resolve(store)
	if err != nil {
		return reportRefErr(errOut, err)
	}

	if !c.force {
		fmt.Fprintf(errOut, "error: refusing to delete %q without confirmation (use --force)\n", task.Text)
		return exitcode.UserError
	}

	if _, err := store.DeleteTask(ctx, task.ID); err != nil {
		return reportStoreErr(errOut, err)
	}
	return printOK(cfg, out)
}
