package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/todo"
)

// reportStoreErr prints a store error and returns the matching exit code.
// A failed save leaves the change applied in memory only, so it is reported
// as a storage error rather than a user error.
func reportStoreErr(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, todo.ErrEmptyText):
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	case errors.Is(err, todo.ErrUnknownFilter):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, todo.ErrPersist):
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
}

func reportRefErr(errOut io.Writer, err error) int {
	if errors.Is(err, ErrTaskRefRequired) {
		fmt.Fprintln(errOut, "error: task reference required")
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}

// printOK acknowledges a successful mutation.
func printOK(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// extraArgs reports arguments a command does not take. The flag package
// stops at the first positional, so a flag typed after it lands here.
func extraArgs(errOut io.Writer, args []string) bool {
	if len(args) == 0 {
		return false
	}
	if strings.HasPrefix(args[0], "-") && args[0] != "-" {
		fmt.Fprintf(errOut, "error: flags must come before arguments: %s\n", args[0])
	} else {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
	}
	return true
}
