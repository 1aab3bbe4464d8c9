package main

import (
	"github.com/gaarutyunov/newlang/pkg/eval"
	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/parser"
)

// evalSource runs src (named filename for diagnostics) through the full
// macro-expand + lex + parse + evaluate pipeline against e's existing
// session/global frames.
func evalSource(e *eval.Evaluator, filename, src string) (object.Object, error) {
	term, err := parser.ParseString(filename, src)
	if err != nil {
		return nil, err
	}
	return e.Eval(term)
}
