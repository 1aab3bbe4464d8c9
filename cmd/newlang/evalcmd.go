package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gaarutyunov/newlang/pkg/eval"
)

// evalCommand implements `newlang eval [-I DIR]... EXPR`: evaluate a
// single inline expression and print its result, the one-shot sibling of
// `run`'s file-based form.
func evalCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "evaluate a single NewLang expression and print its result",
		ArgsUsage: "EXPR",
		Flags:     []cli.Flag{importPathFlag},
		Action: func(c *cli.Context) error {
			expr := c.Args().First()
			if expr == "" {
				return usageExit("eval requires an expression argument")
			}

			e := eval.New()
			if err := e.LoadSession(c.StringSlice("I")...); err != nil {
				return diagExit(err)
			}

			result, err := evalSource(e, "<eval>", expr)
			if err != nil {
				return diagExit(err)
			}
			fmt.Println(result.String())
			return nil
		},
	}
}
