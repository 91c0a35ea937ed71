package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/todo"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd replaces a task's text.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Replace the text of a task" }
func (c *EditCmd) Usage() string     { return "todo edit <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, store *todo.Store, args []string, out, errOut io.Writer) int {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		return reportRefErr(errOut, err)
	}
	if len(rest) == 0 {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}
	task, err := ref.Resolve(store)
	if err != nil {
		return reportRefErr(errOut, err)
	}

	if _, err := store.EditTask(ctx, task.ID, strings.Join(rest, " ")); err != nil {
		return reportStoreErr(errOut, err)
	}
	return printOK(cfg, out)
}
