package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/output"
	"todolist/internal/query"
	"todolist/internal/todo"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command, which is also what `todo` with no
// arguments runs.
type ListCmd struct {
	filter string
	where  string
	long   bool
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(name string) {
	c.filter = name
}

// SetWhere sets the query expression (for testing).
func (c *ListCmd) SetWhere(expr string) {
	c.where = expr
}

// SetLong enables the long format (for testing).
func (c *ListCmd) SetLong(long bool) {
	c.long = long
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks, newest first" }
func (c *ListCmd) Usage() string {
	return "todo list [--filter all|pending|completed] [--where <expr>] [--long]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.where, "where", "", "")
	fs.BoolVar(&c.long, "long", false, "")
	fs.BoolVar(&c.long, "l", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, store *todo.Store, args []string, out, errOut io.Writer) int {
	if extraArgs(errOut, args) {
		return exitcode.UserError
	}

	filter, err := todo.ParseFilter(c.filter)
	if err != nil {
		return reportStoreErr(errOut, err)
	}
	if err := store.SetFilter(filter); err != nil {
		return reportStoreErr(errOut, err)
	}

	pred, err := query.Compile(c.where)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if where := pred.String(); where != "" && cfg.Log != nil {
		cfg.Log.WithField("where", where).Debug("cli.list_query")
	}
	tasks, err := pred.Filter(store.FilteredTasks())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	counts := store.Counts()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			if counts.Total == 0 {
				fmt.Fprintln(out, output.NoTasks)
			} else {
				fmt.Fprintln(out, output.NoMatches)
			}
		}
		return exitcode.Success
	}

	pos := positions(store.Tasks())
	for _, task := range tasks {
		if c.long {
			output.FormatTaskLong(out, pos[task.ID], task)
		} else {
			output.FormatTask(out, pos[task.ID], task)
		}
	}
	if !cfg.Quiet {
		output.FormatCounts(out, counts)
	}
	return exitcode.Success
}
