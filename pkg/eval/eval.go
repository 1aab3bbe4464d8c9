// Package eval walks the ast.Term tree pkg/parser produces and computes
// object.Object values (spec §4's "tree-walking evaluator"). It is the
// one ast.Visitor implementation in the repo that cannot leave any of
// the 26 VisitX methods as a no-op the way ast.Printer/ast.BaseVisitor
// do, so Evaluator implements ast.Visitor directly rather than embedding
// ast.BaseVisitor.
//
// Every VisitX method either returns an object.Object (boxed as any) or
// panics with a Go error — one of the internal/diagnostic error types,
// or a *diagnostic.ReturnInterruption/*diagnostic.BreakInterruption
// control-flow carrier. Eval is the outermost recover site; callers
// never see a raw panic. Errors stay values at the API boundary, but a
// deeply nested tree walk uses panic/recover internally rather than
// threading an error return through every VisitX method — with four
// distinct recover sites (top-level, function-return, loop-break, and
// the try-block, which converts ordinary errors into an Error value).
package eval

import (
	"fmt"
	"os"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/ffi"
	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/parser"
	"github.com/gaarutyunov/newlang/pkg/scope"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// Evaluator holds the interpreter's process-wide state (spec §5: session
// and global frames persist across Eval calls within one process). Eval
// pushes no frame of its own, so top-level local bindings also persist
// from one Eval call to the next; only a function call pushes a fresh
// local frame.
type Evaluator struct {
	Scopes   *scope.Scopes
	Natives  *ffi.Registry
	Memoize  bool // resolved Open Question 4: pure-function memoization, off by default
	memo     map[string]object.Object
}

// New builds an Evaluator with fresh session/global frames and an empty
// native module registry.
func New() *Evaluator {
	return &Evaluator{
		Scopes:  scope.NewScopes(scope.NewFrame(), scope.NewFrame()),
		Natives: ffi.NewRegistry(),
		memo:    make(map[string]object.Object),
	}
}

// Eval evaluates a single parsed Term, recovering any control-flow or
// error panic raised during the walk into a normal (nil, err) return
// (spec §7: "no unhandled panic ever reaches the embedder").
func (e *Evaluator) Eval(t *ast.Term) (result object.Object, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, panicToError(r)
		}
	}()
	return e.eval(t), nil
}

// LoadSession reads, parses, and evaluates each path in turn against the
// same session/global frames, the way a REPL's `:load` or a CLI's `-I`
// search-path preamble would. Each file runs with parser.ParseString's
// full macro-expand + lex + parse pipeline, so a preload file can use
// macros and see bindings left by an earlier one.
func (e *Evaluator) LoadSession(paths ...string) error {
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		t, err := parser.ParseString(path, string(src))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if _, err := e.Eval(t); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// panicToError normalizes a recovered panic value to an error. Every
// panic this package raises already carries an error (diagnostic.* or a
// control-flow carrier); anything else indicates a real bug and is
// wrapped rather than silently swallowed.
func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("internal evaluator panic: %v", r)
}

// eval is the internal Accept wrapper used pervasively instead of
// t.Accept(e) directly, so every call site reads as "evaluate this
// sub-term" rather than "dispatch this visitor method".
func (e *Evaluator) eval(t *ast.Term) object.Object {
	return t.Accept(e).(object.Object)
}

// pos converts a token.Position-bearing Term's Pos to a diagnostic.Position
// (diagnostic.Position has no Offset field, unlike token.Position).
func pos(t *ast.Term) diagnostic.Position {
	return diagnostic.Position{Filename: t.Pos.Filename, Line: t.Pos.Line, Column: t.Pos.Column}
}

func runtimeErr(t *ast.Term, format string, args ...any) error {
	return &diagnostic.RuntimeError{Pos: pos(t), Msg: fmt.Sprintf(format, args...)}
}

func typeErr(t *ast.Term, format string, args ...any) error {
	return &diagnostic.TypeError{Pos: pos(t), Msg: fmt.Sprintf(format, args...)}
}

func valueErr(t *ast.Term, format string, args ...any) error {
	return &diagnostic.ValueError{Pos: pos(t), Msg: fmt.Sprintf(format, args...)}
}

// withPos attaches t's position to an error from a package (pkg/scope,
// pkg/ffi, pkg/object) that builds diagnostics without a Term in scope,
// leaving its Pos zero-valued. Errors that already carry a position, or
// whose type this package doesn't recognize, pass through unchanged.
func withPos(err error, t *ast.Term) error {
	switch e := err.(type) {
	case *diagnostic.RuntimeError:
		if e.Pos == (diagnostic.Position{}) {
			e.Pos = pos(t)
		}
	case *diagnostic.TypeError:
		if e.Pos == (diagnostic.Position{}) {
			e.Pos = pos(t)
		}
	case *diagnostic.ValueError:
		if e.Pos == (diagnostic.Position{}) {
			e.Pos = pos(t)
		}
	}
	return err
}

// yesNo boxes a Go bool as the Bool-kind scalar Tensor spec §4.4 prints
// as "Yes"/"No".
func yesNo(b bool) *object.Tensor {
	v := 0.0
	if b {
		v = 1.0
	}
	return object.NewScalar(types.Bool, v)
}
