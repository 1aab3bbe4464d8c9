package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// Tensor is a contiguous, row-major n-dimensional array (spec §3: "element
// type..., shape, contiguous storage; scalar when shape is empty").
// Storage is kept as float64 regardless of ElemKind; narrower integer
// kinds are enforced at the boundary (construction, assignment, FFI
// marshal) rather than by a separate Go type per kind, since Go has no
// generic numeric array type that spans Bool..Float64 without reflection
// or code generation — this is the one deliberate stdlib-shaped corner of
// the value model (see DESIGN.md).
type Tensor struct {
	ElemKind types.Kind
	Shape    []int
	Data     []float64
}

func product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// NewTensor builds a Tensor, checking that its flat storage length
// equals the product of its declared shape.
func NewTensor(kind types.Kind, shape []int, data []float64) (*Tensor, error) {
	want := product(shape)
	if want != len(data) {
		return nil, &diagnostic.ValueError{Msg: fmt.Sprintf("tensor shape %v wants %d elements, got %d", shape, want, len(data))}
	}
	return &Tensor{ElemKind: kind, Shape: append([]int(nil), shape...), Data: data}, nil
}

// NewScalar builds a rank-0 Tensor (spec §3: "scalar when shape is empty").
func NewScalar(kind types.Kind, v float64) *Tensor {
	return &Tensor{ElemKind: kind, Shape: nil, Data: []float64{v}}
}

// Kind reports the object's current kind (spec I1): a scalar (rank-0)
// Tensor reports its element kind directly, since spec §2's lattice
// places the scalar numeric chain below Tensor ("Int64 ⊂ Tensor ⊂ ...")
// rather than folding every scalar into a generic Tensor kind — e.g.
// `var1 ::= 123` must report kind Int8, not Tensor (spec §8 scenario 1).
// Only a genuine multi-element array reports types.Tensor.
func (t *Tensor) Kind() types.Kind {
	if t.IsScalar() {
		return t.ElemKind
	}
	return types.Tensor
}

func (t *Tensor) FixedKind() (types.Kind, bool) { return t.ElemKind, true }

// IsScalar reports whether t has an empty shape.
func (t *Tensor) IsScalar() bool { return len(t.Shape) == 0 }

func formatScalar(kind types.Kind, v float64) string {
	switch kind {
	case types.Bool:
		if v != 0 {
			return "Yes"
		}
		return "No"
	case types.Float32, types.Float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		return s
	default:
		return strconv.FormatInt(int64(v), 10)
	}
}

func (t *Tensor) String() string {
	if t.IsScalar() {
		return formatScalar(t.ElemKind, t.Data[0])
	}
	var b strings.Builder
	t.printRec(&b, t.Shape, t.Data)
	fmt.Fprintf(&b, ":%s", t.ElemKind)
	return b.String()
}

// printRec renders nested-bracket form, matching spec scenario 3's
// "[\n  [1, 2,], [3, 4,],\n]:Int32" shape for rank >= 2, and a flat
// bracketed list for rank 1. Every element is comma-terminated, but only
// non-last elements get the following space — the last element's comma
// butts directly against the closing bracket.
func (t *Tensor) printRec(b *strings.Builder, shape []int, data []float64) {
	if len(shape) == 1 {
		b.WriteString("[")
		for i, v := range data {
			b.WriteString(formatScalar(t.ElemKind, v))
			if i < len(data)-1 {
				b.WriteString(", ")
			} else {
				b.WriteString(",")
			}
		}
		b.WriteString("]")
		return
	}
	stride := product(shape[1:])
	if len(shape) > 1 {
		b.WriteString("[\n  ")
	}
	for i := 0; i < shape[0]; i++ {
		t.printRec(b, shape[1:], data[i*stride:(i+1)*stride])
		if i < shape[0]-1 {
			b.WriteString(", ")
		} else {
			b.WriteString(",")
		}
	}
	if len(shape) > 1 {
		b.WriteString("\n]")
	}
}

// binaryElemwise applies fn element-wise after checking shapes line up
// (no broadcasting: shapes must match exactly, or one side may be
// scalar).
func binaryElemwise(a, b *Tensor, kind types.Kind, fn func(x, y float64) float64) (*Tensor, error) {
	switch {
	case a.IsScalar() && b.IsScalar():
		return NewScalar(kind, fn(a.Data[0], b.Data[0])), nil
	case a.IsScalar():
		out := make([]float64, len(b.Data))
		for i, v := range b.Data {
			out[i] = fn(a.Data[0], v)
		}
		return &Tensor{ElemKind: kind, Shape: b.Shape, Data: out}, nil
	case b.IsScalar():
		out := make([]float64, len(a.Data))
		for i, v := range a.Data {
			out[i] = fn(v, b.Data[0])
		}
		return &Tensor{ElemKind: kind, Shape: a.Shape, Data: out}, nil
	default:
		if len(a.Data) != len(b.Data) || !sameShape(a.Shape, b.Shape) {
			return nil, &diagnostic.ValueError{Msg: fmt.Sprintf("shape mismatch %v vs %v", a.Shape, b.Shape)}
		}
		out := make([]float64, len(a.Data))
		for i := range a.Data {
			out[i] = fn(a.Data[i], b.Data[i])
		}
		return &Tensor{ElemKind: kind, Shape: a.Shape, Data: out}, nil
	}
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func resultKind(a, b *Tensor) (types.Kind, error) {
	k, ok := types.Promote(a.ElemKind, b.ElemKind)
	if !ok {
		return types.Invalid, &diagnostic.TypeError{Msg: "incompatible tensor element kinds", Want: a.ElemKind.String(), Got: b.ElemKind.String()}
	}
	return k, nil
}

// Add, Sub, Mul implement `+`, `-`, `*` with spec §4.4 promotion.
func (a *Tensor) Add(b *Tensor) (*Tensor, error) {
	k, err := resultKind(a, b)
	if err != nil {
		return nil, err
	}
	return binaryElemwise(a, b, k, func(x, y float64) float64 { return x + y })
}

func (a *Tensor) Sub(b *Tensor) (*Tensor, error) {
	k, err := resultKind(a, b)
	if err != nil {
		return nil, err
	}
	return binaryElemwise(a, b, k, func(x, y float64) float64 { return x - y })
}

func (a *Tensor) Mul(b *Tensor) (*Tensor, error) {
	k, err := resultKind(a, b)
	if err != nil {
		return nil, err
	}
	return binaryElemwise(a, b, k, func(x, y float64) float64 { return x * y })
}

// Div implements `/`: spec §4.4 "Division `/` of two integer tensors
// yields Float64"; float operands keep their (promoted) float kind.
func (a *Tensor) Div(b *Tensor) (*Tensor, error) {
	k, err := resultKind(a, b)
	if err != nil {
		return nil, err
	}
	if types.IsNumeric(k) && !isFloatKind(a.ElemKind) && !isFloatKind(b.ElemKind) {
		k = types.Float64
	}
	return binaryElemwise(a, b, k, func(x, y float64) float64 { return x / y })
}

func isFloatKind(k types.Kind) bool { return k == types.Float32 || k == types.Float64 }

// FloorDiv implements `//`: floor division rounding toward -infinity.
func (a *Tensor) FloorDiv(b *Tensor) (*Tensor, error) {
	k, err := resultKind(a, b)
	if err != nil {
		return nil, err
	}
	return binaryElemwise(a, b, k, func(x, y float64) float64 { return math.Floor(x / y) })
}

// Mod implements `%`.
func (a *Tensor) Mod(b *Tensor) (*Tensor, error) {
	k, err := resultKind(a, b)
	if err != nil {
		return nil, err
	}
	return binaryElemwise(a, b, k, math.Mod)
}

// Pow implements `**`.
func (a *Tensor) Pow(b *Tensor) (*Tensor, error) {
	k, err := resultKind(a, b)
	if err != nil {
		return nil, err
	}
	return binaryElemwise(a, b, k, math.Pow)
}

// Neg implements unary `-`.
func (t *Tensor) Neg() *Tensor {
	out := make([]float64, len(t.Data))
	for i, v := range t.Data {
		out[i] = -v
	}
	return &Tensor{ElemKind: t.ElemKind, Shape: t.Shape, Data: out}
}

// Equals implements `==`: exact numeric equality across tensor kinds.
func (a *Tensor) Equals(b *Tensor) bool {
	if !sameShape(a.Shape, b.Shape) {
		return false
	}
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			return false
		}
	}
	return true
}

// AccurateEquals implements `===`: spec §4.4 plus the original-source
// test finding (supplemented feature §7) that mixed Int32/Int64 tensors
// compare unequal under `===` even when numerically equal, because their
// *current* kinds differ.
func (a *Tensor) AccurateEquals(b *Tensor) bool {
	return a.ElemKind == b.ElemKind && a.Equals(b)
}

// Compare implements `<`,`<=`,`>`,`>=` for scalars; returns -1/0/1.
func (a *Tensor) Compare(b *Tensor) (int, error) {
	if !a.IsScalar() || !b.IsScalar() {
		return 0, &diagnostic.TypeError{Msg: "ordering comparison requires scalar tensors"}
	}
	switch {
	case a.Data[0] < b.Data[0]:
		return -1, nil
	case a.Data[0] > b.Data[0]:
		return 1, nil
	default:
		return 0, nil
	}
}

// Concat implements `++` along axis 0: shapes beyond axis 0 must match.
func (a *Tensor) Concat(b *Tensor) (*Tensor, error) {
	if len(a.Shape) != len(b.Shape) && !(a.IsScalar() || b.IsScalar()) {
		return nil, &diagnostic.ValueError{Msg: "rank mismatch in concatenation"}
	}
	if len(a.Shape) > 1 {
		for i := 1; i < len(a.Shape); i++ {
			if a.Shape[i] != b.Shape[i] {
				return nil, &diagnostic.ValueError{Msg: "trailing shape mismatch in concatenation"}
			}
		}
	}
	k, err := resultKind(a, b)
	if err != nil {
		return nil, err
	}
	shape := append([]int(nil), a.Shape...)
	if len(shape) == 0 {
		shape = []int{1}
	}
	shape[0] += max(1, b.Shape0())
	data := append(append([]float64(nil), a.Data...), b.Data...)
	return &Tensor{ElemKind: k, Shape: shape, Data: data}, nil
}

// Shape0 returns the first axis length, or 1 for a scalar.
func (t *Tensor) Shape0() int {
	if len(t.Shape) == 0 {
		return 1
	}
	return t.Shape[0]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Index implements single-axis positional indexing `obj[i]` for an
// integer i (spec §4.4); multi-axis tuple indexing is handled by the
// caller via repeated single-axis Index calls.
func (t *Tensor) Index(i int) (*Tensor, error) {
	if len(t.Shape) == 0 {
		return nil, &diagnostic.RuntimeError{Msg: "cannot index a scalar tensor"}
	}
	n := t.Shape[0]
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return nil, &diagnostic.RuntimeError{Msg: fmt.Sprintf("tensor index %d out of range [0,%d)", i, n)}
	}
	stride := product(t.Shape[1:])
	sub := t.Data[idx*stride : (idx+1)*stride]
	return &Tensor{ElemKind: t.ElemKind, Shape: t.Shape[1:], Data: append([]float64(nil), sub...)}, nil
}
