package eval

import (
	"strings"

	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/scope"
)

// VisitName resolves a bare identifier (spec §4.6's plain-name lookup,
// local frame only); "_" always evaluates to None rather than being
// looked up, since it never gets bound (spec §4.5's wildcard/deletion
// marker).
func (e *Evaluator) VisitName(t *ast.Term) any {
	if t.Text == "_" {
		return object.None
	}
	v, err := e.Scopes.Resolve(scope.PrefixBare, t.Text)
	if err != nil {
		panic(withPos(err, t))
	}
	return v
}

// localPrefixAndName splits a KindLocal term's (already `$`-stripped)
// Text into the scope.Prefix it denotes and the bare name: a leading
// "." marks the direct-to-session form (spec §4.6's `$.name`).
func localPrefixAndName(text string) (scope.Prefix, string) {
	if strings.HasPrefix(text, ".") {
		return scope.PrefixSessionDirect, text[1:]
	}
	return scope.PrefixLocal, text
}

// VisitLocal resolves `$name` / `$.name`.
func (e *Evaluator) VisitLocal(t *ast.Term) any {
	prefix, name := localPrefixAndName(t.Text)
	v, err := e.Scopes.Resolve(prefix, name)
	if err != nil {
		panic(withPos(err, t))
	}
	return v
}

// modulePrefixAndName splits a KindModule term's (already `@`-stripped)
// Text the same way localPrefixAndName does for `$`, plus the dotted
// multi-segment form (`@pkg.mod`) used by FFI module references: a
// second embedded dot beyond the optional leading direct-form one means
// this is a native-module path, not a frame lookup (resolved Open
// Question: no spec scenario exercises scope-chain lookup through a
// dotted module name, only the plain `@name`/`@.name` forms and the
// FFI-prototype `:Pointer(...)` module argument, so the dotted form is
// treated as an opaque path string for the latter).
func modulePrefixAndName(text string) (scope.Prefix, string, bool) {
	body := text
	direct := false
	if strings.HasPrefix(body, ".") {
		direct = true
		body = body[1:]
	}
	if strings.Contains(body, ".") {
		return 0, body, true
	}
	if direct {
		return scope.PrefixGlobalDirect, body, false
	}
	return scope.PrefixGlobal, body, false
}

// VisitModule resolves `@name` / `@.name`, or yields a raw dotted module
// path String for `@pkg.mod`-shaped native module references.
func (e *Evaluator) VisitModule(t *ast.Term) any {
	prefix, name, dotted := modulePrefixAndName(t.Text)
	if dotted {
		return object.NewString(name, false)
	}
	v, err := e.Scopes.Resolve(prefix, name)
	if err != nil {
		panic(withPos(err, t))
	}
	return v
}

// VisitNative builds a lazily-resolvable NativeFunc for a bare `%name`
// reference (spec §4.10's zero-prototype form): argument kinds are
// derived from each actual's own runtime kind at call time rather than
// from a prototype, since none is declared here. Resolution against the
// FFI registry happens lazily in callNative via ffi.Resolve.
func (e *Evaluator) VisitNative(t *ast.Term) any {
	return &object.NativeFunc{Mangled: t.Text, Module: "", ABI: "default"}
}
