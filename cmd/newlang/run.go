package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gaarutyunov/newlang/pkg/eval"
)

// runCommand implements `newlang run [-I DIR]... [--exec] FILE`: preload
// every `-I` path into a fresh session, then parse and evaluate FILE
// against it.
func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run a NewLang source file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			importPathFlag,
			&cli.BoolFlag{
				Name:  "exec",
				Usage: "print the program's final value instead of discarding it",
			},
		},
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return usageExit("run requires a source file path")
			}

			e := eval.New()
			if err := e.LoadSession(c.StringSlice("I")...); err != nil {
				return diagExit(err)
			}

			src, err := os.ReadFile(path)
			if err != nil {
				return usageExit("%v", err)
			}

			result, err := evalSource(e, path, string(src))
			if err != nil {
				return diagExit(err)
			}
			if c.Bool("exec") {
				fmt.Println(result.String())
			}
			return nil
		},
	}
}
