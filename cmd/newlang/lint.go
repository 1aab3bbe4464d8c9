package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/grammar"
	"github.com/gaarutyunov/newlang/pkg/parser"
)

// lintCommand implements `newlang lint FILE`: a parse-only shape check
// that runs both the hand-rolled pkg/parser and pkg/grammar's
// declarative participle grammar over the same source, so a regression
// in either one's idea of "valid NewLang" surfaces (pkg/grammar's own
// doc comment on Validate explains why both are worth running).
func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "check a NewLang source file for parse errors without evaluating it",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "ast",
				Usage: "print the parsed term tree reprinted as source",
			},
		},
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return usageExit("lint requires a source file path")
			}

			src, err := os.ReadFile(path)
			if err != nil {
				return usageExit("%v", err)
			}

			term, err := parser.ParseString(path, string(src))
			if err != nil {
				return diagExit(err)
			}
			if err := grammar.Validate(string(src)); err != nil {
				return diagExit(err)
			}
			if errs := ast.Check(term); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintln(os.Stderr, e)
				}
				return cli.Exit("", exitError)
			}

			if c.Bool("ast") {
				fmt.Println(ast.Print(term))
			}
			fmt.Printf("%s: ok\n", path)
			return nil
		},
	}
}
