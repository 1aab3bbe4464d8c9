package object

import (
	"fmt"

	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// NativeFunc is a prototype bound to a foreign symbol (spec §3/§4.10):
// mangled name, module, ABI tag, and a resolved pointer that starts nil
// for lazy resolution. Ptr is `any` rather than unsafe.Pointer so this
// package stays free of cgo/unsafe; pkg/ffi is responsible for the
// concrete pointer representation and Resolve.
type NativeFunc struct {
	Prototype *ast.Term
	Mangled   string
	Module    string
	ABI       string
	Ptr       any
}

func (n *NativeFunc) Kind() types.Kind { return types.NativeFunc }
func (n *NativeFunc) String() string {
	return fmt.Sprintf("NativeFunc(%s@%s)", n.Mangled, n.Module)
}

// EvalFuncVariant distinguishes a plain function from one marked `:-`/
// `::-` transparent (pure) (spec §4.5).
type EvalFuncVariant int

const (
	VariantPlain EvalFuncVariant = iota
	VariantTransparent
)

// EvalFunc is a user-defined function: prototype, body, and a Closure
// slot (spec §3). Closure is `any` to avoid an import cycle with
// pkg/scope (which stores Objects in its frames); pkg/eval stores the
// defining Evaluator's *scope.Scopes there and does not read it back, so
// a call runs against the calling Evaluator's own scopes.
type EvalFunc struct {
	Prototype *ast.Term
	Body      *ast.Term
	Closure   any
	Variant   EvalFuncVariant
	Name      string
}

func (f *EvalFunc) Kind() types.Kind { return types.EvalFunc }
func (f *EvalFunc) String() string {
	if f.Name != "" {
		return fmt.Sprintf("EvalFunc(%s)", f.Name)
	}
	return "EvalFunc(anonymous)"
}

// Pure reports whether f was defined with `:-`/`::-` (spec §4.5); a
// pure-block body alone does not make f pure. The evaluator memoizes a
// pure function when Evaluator.Memoize is set; native calls made from its
// body are not restricted.
func (f *EvalFunc) Pure() bool {
	return f.Variant == VariantTransparent
}
