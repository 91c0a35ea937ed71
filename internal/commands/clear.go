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
	Register(&ClearCmd{})
	Register(&ClearAllCmd{})
}

// ClearCmd removes completed tasks.
type ClearCmd struct{}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return []string{"clear-completed"} }
func (c *ClearCmd) Synopsis() string  { return "Remove all completed tasks" }
func (c *ClearCmd) Usage() string     { return "todo clear" }
func (c *ClearCmd) NeedsStore() bool  { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, store *todo.Store, args []string, out, errOut io.Writer) int {
	if extraArgs(errOut, args) {
		return exitcode.UserError
	}

	removed, err := store.ClearCompleted(ctx)
	if err != nil {
		return reportStoreErr(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "removed %d\n", removed)
	}
	return exitcode.Success
}

// ClearAllCmd empties the list.
type ClearAllCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *ClearAllCmd) SetForce(force bool) {
	c.force = force
}

func (c *ClearAllCmd) Name() string      { return "clear-all" }
func (c *ClearAllCmd) Aliases() []string { return nil }
func (c *ClearAllCmd) Synopsis() string  { return "Remove every task" }
func (c *ClearAllCmd) Usage() string     { return "todo clear-all --force" }
func (c *ClearAllCmd) NeedsStore() bool  { return true }

func (c *ClearAllCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *ClearAllCmd) Run(ctx context.Context, cfg *config.Config, store *todo.Store, args []string, out, errOut io.Writer) int {
	if extraArgs(errOut, args) {
		return exitcode.UserError
	}
	if !c.force {
		fmt.Fprintf(errOut, "error: refusing to delete all %d tasks without confirmation (use --force)\n", store.Counts().Total)
		return exitcode.UserError
	}

	removed, err := store.ClearAll(ctx)
	if err != nil {
		return reportStoreErr(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "removed %d\n", removed)
	}
	return exitcode.Success
}
