package commands

import (
	"context"
	"flag"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/todo"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd flips a task between pending and completed.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task between pending and completed" }
func (c *DoneCmd) Usage() string     { return "todo done <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, store *todo.Store, args []string, out, errOut io.Writer) int {
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

	if _, err := store.ToggleTask(ctx, task.ID); err != nil {
		return reportStoreErr(errOut, err)
	}
	return printOK(cfg, out)
}
