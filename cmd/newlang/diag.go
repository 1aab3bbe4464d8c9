package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// diagExit wraps err (a diagnostic.* error or one %w-wrapping it, per
// internal/diagnostic's own Error() formatting) as a cli.ExitCoder, so
// app.Run's caller prints it and exits exitError without main itself
// inspecting the error's concrete type.
func diagExit(err error) error {
	return cli.Exit(err.Error(), exitError)
}

// usageExit reports a CLI-level mistake (missing argument, unreadable
// file) distinctly from a diagnosed language error.
func usageExit(format string, args ...any) error {
	return cli.Exit(fmt.Sprintf(format, args...), exitUsage)
}
