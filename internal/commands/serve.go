package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/todo"
	"todolist/internal/web"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd runs the web page until interrupted.
type ServeCmd struct {
	addr string
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Serve the task page over HTTP" }
func (c *ServeCmd) Usage() string     { return "todo serve [--addr <host:port>]" }
func (c *ServeCmd) NeedsStore() bool  { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, store *todo.Store, args []string, out, errOut io.Writer) int {
	addr := c.addr
	if addr == "" {
		addr = cfg.Settings.Server.Addr
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "listening on http://%s\n", addr)
	}
	if err := web.New(store, cfg.Log).Run(ctx, addr); err != nil {
		fmt.Fprintf(errOut, "error: server: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
