// Command newlang drives the interpreter from the shell: one-shot
// evaluation of an expression (`eval`), running a script file (`run`),
// an interactive session (`repl`), and a parse-only shape check
// (`lint`). Errors propagate from the library packages and are printed
// with their diagnostic kind, message, and position (spec §7); main
// itself never constructs a diagnostic.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Exit codes (spec §7): 0 success, 1 a diagnosed error (parse/runtime/
// type/value), 2 a CLI usage error (bad flags, missing file).
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// newApp builds the CLI app, factored out of main so tests can drive it
// directly through App.Run without spawning a subprocess.
func newApp() *cli.App {
	return &cli.App{
		Name:  "newlang",
		Usage: "run, evaluate, and explore NewLang programs",
		Commands: []*cli.Command{
			runCommand(),
			evalCommand(),
			replCommand(),
			lintCommand(),
		},
	}
}

func main() {
	app := newApp()

	if err := app.Run(os.Args); err != nil {
		if _, ok := err.(cli.ExitCoder); ok {
			cli.HandleExitCoder(err)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
}

// importPathFlag is the `-I DIR` repeatable session-preload search path
// shared by `run`, `eval`, and `repl`.
var importPathFlag = &cli.StringSliceFlag{
	Name:    "I",
	Aliases: []string{"import"},
	Usage:   "preload a source file into the session before running (repeatable)",
}
