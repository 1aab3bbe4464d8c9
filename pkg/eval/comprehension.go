package eval

import (
	"strings"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/ast"
	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// VisitType builds the first-class Type value a `:TypeName[dims]` term
// denotes (spec §4.3/§4.9): a built-in name resolves via types.Lookup, a
// name that isn't one of the built-ins is treated as a class reference.
func (e *Evaluator) VisitType(t *ast.Term) any {
	return e.buildType(t)
}

func (e *Evaluator) buildType(t *ast.Term) *object.Type {
	typ := &object.Type{}
	if k, ok := types.Lookup(t.Text); ok {
		typ.TypeKind = k
	} else {
		typ.TypeKind = types.Class
		typ.ClassName = t.Text
	}
	if t.Type != nil && len(t.Type.Dims) > 0 {
		dims := make([]int, len(t.Type.Dims))
		for i, d := range t.Type.Dims {
			if d.Kind == ast.KindEllipsis {
				dims[i] = -1
				continue
			}
			dims[i] = mustInt(e.eval(d), t)
		}
		typ.Dims = dims
	}
	return typ
}

// VisitTypeCall implements `:Type[shape](args)` construction (spec
// §4.9's comprehension syntax), special-casing the FFI `:Pointer(...)`
// prototype-string form (scenario 6) before the normal Type/comprehend
// path, since "Pointer" is not a member of the built-in type lattice at
// all.
func (e *Evaluator) VisitTypeCall(t *ast.Term) any {
	if t.Left.Text == "Pointer" {
		return e.buildNativeFuncFromPrototype(t)
	}
	typ := e.buildType(t.Left)
	return e.comprehend(typ, t.Args, t)
}

// comprehend dispatches a Type call to Dict or Tensor construction (spec
// §4.9).
func (e *Evaluator) comprehend(typ *object.Type, args []ast.Arg, t *ast.Term) object.Object {
	if typ.TypeKind == types.Dict {
		return e.comprehendDict(args)
	}
	return e.comprehendTensor(typ, args, t)
}

func (e *Evaluator) comprehendDict(args []ast.Arg) object.Object {
	d := &object.Dict{}
	for _, a := range args {
		d.Append(object.Entry{Name: a.Name, Value: e.eval(a.Value)})
	}
	return d
}

// comprehendTensor builds a numeric Tensor from comprehension args
// (spec §4.9): with no declared shape the result is rank-1 (or, for a
// single bare Tensor argument, that tensor recast to the target
// element kind); with a declared shape, arguments are flattened
// (auto-splicing Tensor/Dict arguments) to fill it, at most one
// dimension may be an automatic "..." size, and underrun is resolved by
// repeatedly re-evaluating the last argument's own term when it carried
// a trailing "..." spread marker.
func (e *Evaluator) comprehendTensor(typ *object.Type, args []ast.Arg, t *ast.Term) object.Object {
	kind := typ.TypeKind
	if kind == types.Tensor {
		kind = types.Float64
	}
	if !types.IsNumeric(kind) && kind != types.Float64 {
		panic(typeErr(t, "comprehension target type %s is not numeric", typ.TypeKind))
	}

	if typ.Dims == nil {
		return e.comprehendInferredShape(kind, args, t)
	}

	dims := append([]int(nil), typ.Dims...)
	autoIdx := -1
	otherProduct := 1
	for i, d := range dims {
		if d < 0 {
			if autoIdx >= 0 {
				panic(valueErr(t, "tensor shape has more than one automatic dimension"))
			}
			autoIdx = i
			continue
		}
		otherProduct *= d
	}

	flat, fillTerm := e.flattenComprehensionArgs(args, t)

	if autoIdx < 0 {
		for len(flat) < otherProduct {
			if fillTerm == nil {
				panic(valueErr(t, "comprehension arguments underrun the declared shape"))
			}
			flat = append(flat, e.flattenOne(e.eval(fillTerm))...)
		}
		if len(flat) > otherProduct {
			panic(valueErr(t, "comprehension arguments overrun the declared shape"))
		}
	} else {
		if otherProduct == 0 || len(flat)%otherProduct != 0 {
			panic(valueErr(t, "comprehension element count is not divisible by the declared shape"))
		}
		dims[autoIdx] = len(flat) / otherProduct
	}

	data := make([]float64, len(flat))
	for i, v := range flat {
		data[i] = scalarFloat(v, t)
	}
	tn, err := object.NewTensor(kind, dims, data)
	if err != nil {
		panic(withPos(err, t))
	}
	return tn
}

func (e *Evaluator) comprehendInferredShape(kind types.Kind, args []ast.Arg, t *ast.Term) object.Object {
	if len(args) == 1 && args[0].Name == "" {
		if tn, ok := e.eval(args[0].Value).(*object.Tensor); ok {
			out, err := object.NewTensor(kind, tn.Shape, append([]float64(nil), tn.Data...))
			if err != nil {
				panic(withPos(err, t))
			}
			return out
		}
	}
	flat, _ := e.flattenComprehensionArgs(args, t)
	data := make([]float64, len(flat))
	for i, v := range flat {
		data[i] = scalarFloat(v, t)
	}
	tn, err := object.NewTensor(kind, []int{len(flat)}, data)
	if err != nil {
		panic(withPos(err, t))
	}
	return tn
}

// flattenComprehensionArgs evaluates each arg and splices Tensor/Dict
// arguments' own elements into the flat result; if the last argument
// carries a trailing "..." spread marker (its own Default set to a
// KindEllipsis term by pkg/parser's parseCallArgs), that argument's term
// is returned as fillTerm for repeated re-evaluation on underrun.
func (e *Evaluator) flattenComprehensionArgs(args []ast.Arg, t *ast.Term) (flat []object.Object, fillTerm *ast.Term) {
	for i, a := range args {
		v := e.eval(a.Value)
		flat = append(flat, e.flattenOne(v)...)
		if i == len(args)-1 && a.Default != nil && a.Default.Kind == ast.KindEllipsis {
			fillTerm = a.Value
		}
	}
	return flat, fillTerm
}

func (e *Evaluator) flattenOne(v object.Object) []object.Object {
	switch vv := v.(type) {
	case *object.Tensor:
		if vv.IsScalar() {
			return []object.Object{vv}
		}
		out := make([]object.Object, len(vv.Data))
		for i, d := range vv.Data {
			out[i] = object.NewScalar(vv.ElemKind, d)
		}
		return out
	case *object.Dict:
		out := make([]object.Object, len(vv.Entries))
		for i, ent := range vv.Entries {
			out[i] = ent.Value
		}
		return out
	default:
		return []object.Object{v}
	}
}

func scalarFloat(v object.Object, t *ast.Term) float64 {
	switch vv := v.(type) {
	case *object.Tensor:
		if !vv.IsScalar() {
			panic(typeErr(t, "expected a scalar tensor element"))
		}
		return vv.Data[0]
	case *object.Fraction:
		return vv.Float64()
	default:
		panic(typeErr(t, "expected a numeric element, got %s", v.Kind()))
	}
}

// buildNativeFuncFromPrototype implements the FFI native-function
// prototype-string form (spec scenario 6):
// `printf := :Pointer('printf(format:FmtChar, ...):Int32')`. The first
// argument is a prototype string parsed by parsePrototype; an optional
// second argument names the module to resolve the symbol from.
func (e *Evaluator) buildNativeFuncFromPrototype(t *ast.Term) object.Object {
	if len(t.Args) == 0 {
		panic(runtimeErr(t, ":Pointer(...) requires a prototype string argument"))
	}
	protoVal := e.eval(t.Args[0].Value)
	ps, ok := protoVal.(*object.String)
	if !ok {
		panic(typeErr(t, ":Pointer(...) prototype argument must be a string"))
	}
	proto, err := parsePrototype(ps.Text())
	if err != nil {
		panic(withPos(err, t))
	}
	module := ""
	if len(t.Args) > 1 {
		if ms, ok := e.eval(t.Args[1].Value).(*object.String); ok {
			module = ms.Text()
		}
	}
	return &object.NativeFunc{Prototype: proto, Mangled: proto.Text, Module: module, ABI: "default"}
}

// parsePrototype parses a C-like prototype string ("name(p1:T1, p2:T2,
// ...):RetType") into a synthetic Function Term carrying just enough
// shape for callNative to marshal/unmarshal against: each parameter
// becomes a KindName Arg whose Value carries the declared :Type
// annotation, mirroring how pkg/parser attaches type annotations
// elsewhere. No example in the pack parses C prototype strings, so this
// is grounded directly on spec §4.10/§6's own EBNF-ish description of
// the form rather than on borrowed code.
func parsePrototype(src string) (*ast.Term, error) {
	src = strings.TrimSpace(src)
	open := strings.Index(src, "(")
	if open < 0 {
		return nil, &diagnostic.ValueError{Msg: "malformed native prototype: missing '('"}
	}
	name := strings.TrimSpace(src[:open])

	depth := 0
	closeIdx := -1
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		return nil, &diagnostic.ValueError{Msg: "malformed native prototype: unbalanced parens"}
	}

	paramsStr := strings.TrimSpace(src[open+1 : closeIdx])
	rest := strings.TrimSpace(src[closeIdx+1:])

	var args []ast.Arg
	variadic := false
	if paramsStr != "" {
		for _, p := range strings.Split(paramsStr, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if p == "..." {
				variadic = true
				continue
			}
			parts := strings.SplitN(p, ":", 2)
			pname := strings.TrimSpace(parts[0])
			var typ *ast.TypeAnnotation
			if len(parts) == 2 {
				typ = &ast.TypeAnnotation{Name: strings.TrimSpace(parts[1])}
			}
			args = append(args, ast.Arg{Name: pname, Value: &ast.Term{Kind: ast.KindName, Text: pname, Type: typ}})
		}
	}

	var retType *ast.TypeAnnotation
	if strings.HasPrefix(rest, ":") {
		retType = &ast.TypeAnnotation{Name: strings.TrimSpace(strings.TrimPrefix(rest, ":"))}
	}

	return &ast.Term{Kind: ast.KindFunction, Text: name, Args: args, Variadic: variadic, Type: retType}, nil
}
