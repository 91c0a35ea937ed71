package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/export"
	"todolist/internal/todo"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd writes the tasks as json, csv or pdf.
type ExportCmd struct {
	format string
	output string
	filter string
}

// SetFormat sets the export format (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

// SetOutput sets the output path (for testing).
func (c *ExportCmd) SetOutput(path string) {
	c.output = path
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export tasks as json, csv or pdf" }
func (c *ExportCmd) Usage() string {
	return "todo export [--format " + strings.Join(export.Formats, "|") + "] [--output <file>] [--filter <name>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "json", "")
	fs.StringVar(&c.output, "output", "", "")
	fs.StringVar(&c.output, "o", "", "")
	fs.StringVar(&c.filter, "filter", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, store *todo.Store, args []string, out, errOut io.Writer) int {
	format := strings.ToLower(c.format)
	if format == "" {
		format = "json"
	}
	if !slices.Contains(export.Formats, format) {
		fmt.Fprintf(errOut, "error: unknown format %s (want one of %s)\n", format, strings.Join(export.Formats, ", "))
		return exitcode.UserError
	}
	if format == "pdf" && c.output == "" {
		fmt.Fprintln(errOut, "error: pdf export requires --output")
		return exitcode.UserError
	}

	filter, err := todo.ParseFilter(c.filter)
	if err != nil {
		return reportStoreErr(errOut, err)
	}
	tasks := filter.Apply(store.Tasks())

	if c.output == "" {
		if err := export.Export(out, format, tasks); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	f, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := export.Export(f, format, tasks); err != nil {
		f.Close()
		os.Remove(c.output)
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return printOK(cfg, out)
}
