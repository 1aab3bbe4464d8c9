package eval

import (
	"os"
	"strings"
	"testing"

	"github.com/gaarutyunov/newlang/pkg/ffi"
	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/parser"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// mustEval parses and evaluates src against a fresh Evaluator, failing
// the test on either a parse or an evaluation error.
func mustEval(t *testing.T, src string) object.Object {
	t.Helper()
	term, err := parser.ParseString("test.nl", src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	result, err := New().Eval(term)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return result
}

// evalErr parses and evaluates src, requiring it to fail, and returns
// the error.
func evalErr(t *testing.T, src string) error {
	t.Helper()
	term, err := parser.ParseString("test.nl", src)
	if err != nil {
		return err
	}
	_, err = New().Eval(term)
	if err == nil {
		t.Fatalf("eval %q: expected an error, got none", src)
	}
	return err
}

// Scenario 1 (spec §8): `var1 ::= 123; var1` -> Int8, prints "123".
func TestScenarioCreateOnlyThenRead(t *testing.T) {
	result := mustEval(t, "var1 ::= 123; var1")
	tn, ok := result.(*object.Tensor)
	if !ok || !tn.IsScalar() {
		t.Fatalf("expected a scalar Tensor, got %T", result)
	}
	if tn.ElemKind != types.Int8 {
		t.Errorf("expected Int8, got %s", tn.ElemKind)
	}
	if got := result.String(); got != "123" {
		t.Errorf("expected %q, got %q", "123", got)
	}
}

// Scenario 2 (spec §8): `100\1 + 1\3` -> Fraction 301\3.
func TestScenarioFractionArithmetic(t *testing.T) {
	result := mustEval(t, `100\1 + 1\3`)
	f, ok := result.(*object.Fraction)
	if !ok {
		t.Fatalf("expected a Fraction, got %T", result)
	}
	if got := f.String(); got != `301\3` {
		t.Errorf("expected %q, got %q", `301\3`, got)
	}
}

// Scenario 3 (spec §8): a shaped comprehension builds a rank-2 Tensor by
// splicing a dict literal's elements in row-major order, printing the
// exact nested-bracket form spec.md's scenario 3 names.
func TestScenarioShapedTensorComprehension(t *testing.T) {
	result := mustEval(t, ":Int32[2,2]((1,2,3,4,))")
	tn, ok := result.(*object.Tensor)
	if !ok {
		t.Fatalf("expected a Tensor, got %T", result)
	}
	if tn.ElemKind != types.Int32 {
		t.Errorf("expected Int32, got %s", tn.ElemKind)
	}
	if len(tn.Shape) != 2 || tn.Shape[0] != 2 || tn.Shape[1] != 2 {
		t.Errorf("expected shape [2,2], got %v", tn.Shape)
	}
	want := "[\n  [1, 2,], [3, 4,],\n]:Int32"
	if got := result.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// Scenario 4 (spec §8): a dict iterator yields its elements in order and
// reports IteratorEnd once exhausted.
func TestScenarioDictIteratorProtocol(t *testing.T) {
	e := New()
	src := `dict := ('1'=1, "22"=2, '333'=3, 4, "555"=5,); it := dict?`
	term, err := parser.ParseString("test.nl", src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := e.Eval(term); err != nil {
		t.Fatalf("eval: %v", err)
	}

	for i, want := range []string{"1", "2", "3"} {
		next, err := parser.ParseString("test.nl", "it!")
		if err != nil {
			t.Fatalf("parse it!: %v", err)
		}
		v, err := e.Eval(next)
		if err != nil {
			t.Fatalf("eval it! #%d: %v", i+1, err)
		}
		if got := v.String(); got != want {
			t.Errorf("it! #%d: expected %q, got %q", i+1, want, got)
		}
	}

	fourth := mustEvalAgainst(t, e, "it!")
	if got := fourth.String(); got != "4" {
		t.Errorf("it! #4: expected %q, got %q", "4", got)
	}

	mustEvalAgainst(t, e, "it!") // #5 -> "555" entry
	sixth := mustEvalAgainst(t, e, "it!")
	if !object.IsIteratorEnd(sixth) {
		t.Errorf("it! #6: expected IteratorEnd, got %s", sixth)
	}
}

// Filtering iterator (spec §4.8): `seq?(pattern)` yields only entries
// whose name matches the anchored pattern, "" matching unnamed entries.
func TestFilterIteratorProtocol(t *testing.T) {
	e := New()
	mustEvalAgainst(t, e, `d := (a=1, b=2, a2=3, c=4,)`)
	rest := mustEvalAgainst(t, e, `d?("a.*")!?`)
	dd, ok := rest.(*object.Dict)
	if !ok {
		t.Fatalf("expected a Dict, got %T", rest)
	}
	if dd.Len() != 2 {
		t.Fatalf("expected 2 matching entries, got %d", dd.Len())
	}
	if got := dd.Entries[0].Value.String(); got != "1" {
		t.Errorf("expected first match value 1, got %q", got)
	}
	if got := dd.Entries[1].Value.String(); got != "3" {
		t.Errorf("expected second match value 3, got %q", got)
	}
}

// `it!(n)` materializes the next n elements as a Dict (spec §4.8).
func TestIteratorNextN(t *testing.T) {
	e := New()
	mustEvalAgainst(t, e, `d := (10, 20, 30, 40, 50,); it := d?`)
	result := mustEvalAgainst(t, e, "it!(3)")
	dd, ok := result.(*object.Dict)
	if !ok {
		t.Fatalf("expected a Dict, got %T", result)
	}
	if dd.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", dd.Len())
	}
	if got := dd.Entries[0].Value.String(); got != "10" {
		t.Errorf("expected first element 10, got %q", got)
	}
}

func mustEvalAgainst(t *testing.T, e *Evaluator, src string) object.Object {
	t.Helper()
	term, err := parser.ParseString("test.nl", src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	v, err := e.Eval(term)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

// Conditional chain (spec §4.5): the first truthy guard's body wins, and
// the wildcard "_" always matches.
func TestConditionalChain(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"[1 > 2] --> 10, [1 < 2] --> 20, [_] --> 30", "20"},
		{"[1 > 2] --> 10, [3 > 2] --> 20, [_] --> 30", "20"},
		{"[1 > 2] --> 10, [3 < 2] --> 20, [_] --> 30", "30"},
	}
	for _, tc := range tests {
		if got := mustEval(t, tc.src).String(); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.src, tc.want, got)
		}
	}
}

// Conditional chain with no matching guard yields None.
func TestConditionalChainNoMatchYieldsNone(t *testing.T) {
	result := mustEval(t, "[1 > 2] --> 10")
	if !object.IsNone(result) {
		t.Errorf("expected None, got %s", result)
	}
}

// Repeat loop (spec §4.5): runs while the guard is truthy, yielding the
// last body value.
func TestRepeatLoop(t *testing.T) {
	result := mustEval(t, "count := 0; [count < 5] <-> { count := count + 1 }; count")
	if got := result.String(); got != "5" {
		t.Errorf("expected %q, got %q", "5", got)
	}
}

// Break unwinds the nearest enclosing Repeat with its own value (spec
// §4.5/§7).
func TestBreakUnwindsRepeat(t *testing.T) {
	result := mustEval(t, "count := 0; [count < 10] <-> { count := count + 1; [count == 5] --> ++count++, [_] --> 0 }")
	if got := result.String(); got != "5" {
		t.Errorf("expected break value %q, got %q", "5", got)
	}
}

// Return unwinds a function call, not the loop, when Return is nested
// inside a Repeat inside a function body (spec §4.7 step 6).
func TestReturnUnwindsEnclosingFunction(t *testing.T) {
	result := mustEval(t, `
f() := {
  count := 0;
  [count < 10] <-> {
    count := count + 1;
    [count == 3] --> --count--, [_] --> 0
  }
};
f()
`)
	if got := result.String(); got != "3" {
		t.Errorf("expected %q, got %q", "3", got)
	}
}

// Block variants (spec §4.5): plain, try, pure-AND/OR/XOR.
func TestBlockVariants(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain yields last statement", "{ 1; 2; 3 }", "3"},
		{"pure-and all truthy yields Yes", "{- 1; 1; 1 -}", "Yes"},
		{"pure-and short-circuits on falsy", "{- 1; 0; 1 -}", "No"},
		{"pure-or first truthy yields Yes", "{+ 0; 0; 1 +}", "Yes"},
		{"pure-or all falsy yields No", "{+ 0; 0; 0 +}", "No"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustEval(t, tc.src).String(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTryBlockCatchesError(t *testing.T) {
	result := mustEval(t, "{* 1 + '' *}")
	errObj, ok := result.(*object.Error)
	if !ok {
		t.Fatalf("expected *object.Error, got %T (%s)", result, result)
	}
	if errObj.Message == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestTryBlockDoesNotCatchReturn(t *testing.T) {
	result := mustEval(t, `
f() := { {* --1-- *} };
f()
`)
	if got := result.String(); got != "1" {
		t.Errorf("expected Return to escape the try-block and the function, got %q", got)
	}
}

func TestPureXorBlock(t *testing.T) {
	// Odd count of truthy statements yields Yes; no short-circuit, so
	// every statement runs (side effects via assignment are visible
	// afterward).
	result := mustEval(t, "n := 0; {^ n := n + 1; 1; 0; 1 ^}")
	if got := result.String(); got != "Yes" {
		t.Errorf("expected Yes (three truthy of four), got %q", got)
	}
}

// Assignment modes (spec §4.5 step 3): create-only rejects a redefine,
// create-or-assign always succeeds.
func TestCreateOnlyRejectsExistingName(t *testing.T) {
	err := evalErr(t, "x ::= 1; x ::= 2")
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected an 'already exists' error, got %v", err)
	}
}

func TestCreateOrAssignOverwrites(t *testing.T) {
	result := mustEval(t, "x := 1; x := 2; x")
	if got := result.String(); got != "2" {
		t.Errorf("expected %q, got %q", "2", got)
	}
}

// Deletion form (spec §4.6): `name = _` removes the binding and yields
// Yes if something was removed, parsed from real source text now that
// bare `=` lexes as token.AssignOnly.
func TestDeletionForm(t *testing.T) {
	e := New()
	mustEvalAgainst(t, e, "x := 1")

	if got := mustEvalAgainst(t, e, "x = _").String(); got != "Yes" {
		t.Errorf("expected Yes, got %q", got)
	}

	if err := evalErrAgainst(t, e, "x"); !strings.Contains(err.Error(), "undefined") {
		t.Errorf("expected an undefined-name error after deletion, got %v", err)
	}
}

// Assign-only requires a pre-existing binding (spec §4.3's fourth
// assignment form): `=` against an unbound name is an error, not a
// silent create.
func TestAssignOnlyRequiresExisting(t *testing.T) {
	if err := evalErr(t, "neverBound = 1"); err == nil {
		t.Fatalf("expected an error assigning to an unbound name")
	}
}

// evalErrAgainst evaluates src against an existing Evaluator, requiring it to
// fail, and returns the error.
func evalErrAgainst(t *testing.T, e *Evaluator, src string) error {
	t.Helper()
	term, err := parser.ParseString("test.nl", src)
	if err != nil {
		return err
	}
	_, err = e.Eval(term)
	if err == nil {
		t.Fatalf("eval %q: expected an error, got none", src)
	}
	return err
}

// Scope prefixes (spec §4.6): `$.name`/`@.name` bind directly into the
// session/global frame, bypassing the local shadowing chain, and a bare
// local binding of the same name shadows it on lookup via `$name`/
// `@name`.
func TestScopePrefixesAndShadowing(t *testing.T) {
	e := New()
	mustEvalAgainst(t, e, "$.shared := 1")
	if got := mustEvalAgainst(t, e, "$shared").String(); got != "1" {
		t.Errorf("expected session value 1, got %q", got)
	}

	mustEvalAgainst(t, e, "shared := 2") // shadows in the local frame
	if got := mustEvalAgainst(t, e, "$shared").String(); got != "2" {
		t.Errorf("expected local shadow 2, got %q", got)
	}
	if got := mustEvalAgainst(t, e, "$.shared").String(); got != "1" {
		t.Errorf("expected direct session access to bypass the shadow, got %q", got)
	}
}

func TestGlobalPrefixChain(t *testing.T) {
	e := New()
	mustEvalAgainst(t, e, "@.g := 42")
	if got := mustEvalAgainst(t, e, "@g").String(); got != "42" {
		t.Errorf("expected 42 via the @ prefix chain reaching global, got %q", got)
	}
}

// Operator semantics (spec §4.4).
func TestComparisonAndEquality(t *testing.T) {
	tests := []struct{ src, want string }{
		{"1 == 1", "Yes"},
		{"1 == 2", "No"},
		{"1 != 2", "Yes"},
		{"1 < 2", "Yes"},
		{"2 <= 2", "Yes"},
		{"3 > 2", "Yes"},
		{"2 >= 3", "No"},
		{"1 <=> 2", "-1"},
		{"2 <=> 2", "0"},
		{"3 <=> 2", "1"},
		{"1 === 1", "Yes"},
		{"1:Int8 === 1:Int16", "No"},
		{"1:Int8 === 1:Int8", "Yes"},
	}
	for _, tc := range tests {
		if got := mustEval(t, tc.src).String(); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.src, tc.want, got)
		}
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	// The right side must never run, so a binding error there would fail
	// the test if short-circuiting were broken.
	if got := mustEval(t, "1 == 2 && undefinedName").String(); got != "No" {
		t.Errorf("expected short-circuited &&, got %q", got)
	}
	if got := mustEval(t, "1 == 1 || undefinedName").String(); got != "Yes" {
		t.Errorf("expected short-circuited ||, got %q", got)
	}
}

func TestArithmeticPromotion(t *testing.T) {
	tests := []struct{ src, want string }{
		{"1 + 2", "3"},
		{"7 // 2", "3"},
		{"-7 // 2", "-4"},
		{"7 % 2", "1"},
		{"2 ** 10", "1024"},
		{"'ab' ++ 'cd'", "'abcd'"},
	}
	for _, tc := range tests {
		if got := mustEval(t, tc.src).String(); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.src, tc.want, got)
		}
	}
}

func TestBitwiseOperators(t *testing.T) {
	tests := []struct{ src, want string }{
		{"6 | 3", "7"},
		{"6 ^ 3", "5"},
		{"6 & 3", "2"},
		{"1 << 4", "16"},
		{"16 >> 2", "4"},
	}
	for _, tc := range tests {
		if got := mustEval(t, tc.src).String(); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.src, tc.want, got)
		}
	}
}

func TestUnaryOperators(t *testing.T) {
	if got := mustEval(t, "-5").String(); got != "-5" {
		t.Errorf("expected %q, got %q", "-5", got)
	}
	if got := mustEval(t, "- (2\\1)").String(); got != `-2\1` {
		t.Errorf("expected fraction negation %q, got %q", `-2\1`, got)
	}
}

// Type predicates (spec §4.4).
func TestTypePredicateSubtype(t *testing.T) {
	if got := mustEval(t, "1 ~ :Int64").String(); got != "Yes" {
		t.Errorf("expected Int8 literal to satisfy ~ :Int64 (subtype lattice), got %q", got)
	}
	if got := mustEval(t, "1 !~ :StrChar").String(); got != "Yes" {
		t.Errorf("expected !~ to hold against an unrelated kind, got %q", got)
	}
}

func TestTypePredicateStructural(t *testing.T) {
	src := `(a=1, b="x",) ~~ (a=:Int64, b=:StrWide,)`
	if got := mustEval(t, src).String(); got != "Yes" {
		t.Errorf("expected structural compatibility to hold, got %q", got)
	}
}

func TestTypePredicateStrict(t *testing.T) {
	if got := mustEval(t, "1 ~~~ 1").String(); got != "Yes" {
		t.Errorf("expected a value to be strictly compatible with itself, got %q", got)
	}
	if got := mustEval(t, `1 ~~~ "1"`).String(); got != "No" {
		t.Errorf("expected differing kinds to fail strict compatibility, got %q", got)
	}
}

// Function binding and call dispatch (spec §4.7): positional, named,
// default, and variadic arguments.
func TestFunctionDefaultsNamedAndVariadic(t *testing.T) {
	result := mustEval(t, "f(a, b=10) := { a + b }; f(1)")
	if got := result.String(); got != "11" {
		t.Errorf("expected default applied, got %q", got)
	}

	result = mustEval(t, "f(a, b=10) := { a + b }; f(1, b=5)")
	if got := result.String(); got != "6" {
		t.Errorf("expected named override, got %q", got)
	}

	// The grammar gives a variadic formal no name of its own (spec §4.7's
	// `...` is purely positional); its collected trailing actuals are
	// visible inside the body only under the reserved internal binding
	// function.go's varargsName names — "__varargs__" — as a bare local.
	result = mustEval(t, "f(a, ...) := { __varargs__[0] }; f(1, 2, 3, 4)")
	if got := result.String(); got != "2" {
		t.Errorf("expected the first variadic tail element, got %q", got)
	}
}

func TestFunctionMissingArgumentErrors(t *testing.T) {
	err := evalErr(t, "f(a) := { a }; f()")
	if !strings.Contains(err.Error(), "missing required argument") {
		t.Errorf("expected a missing-argument error, got %v", err)
	}
}

func TestFunctionTooManyArgumentsErrors(t *testing.T) {
	err := evalErr(t, "f(a) := { a }; f(1, 2)")
	if !strings.Contains(err.Error(), "too many arguments") {
		t.Errorf("expected a too-many-arguments error, got %v", err)
	}
}

func TestRecursiveFunctionCall(t *testing.T) {
	result := mustEval(t, `
fact(n) := { [n <= 1] --> 1, [_] --> n * fact(n - 1) };
fact(5)
`)
	if got := result.String(); got != "120" {
		t.Errorf("expected 120, got %q", got)
	}
}

// Indexing and field access (spec §4.4).
func TestIndexingDictTensorString(t *testing.T) {
	if got := mustEval(t, `d := (a=1, b=2,); d["a"]`).String(); got != "1" {
		t.Errorf("expected dict named index 1, got %q", got)
	}
	if got := mustEval(t, `d := (a=1, b=2,); d.b`).String(); got != "2" {
		t.Errorf("expected field access 2, got %q", got)
	}
	if got := mustEval(t, "[10, 20, 30,][1]").String(); got != "20" {
		t.Errorf("expected tensor index 20, got %q", got)
	}
	if got := mustEval(t, "'hello'[1]").String(); got != "'e'" {
		t.Errorf("expected string index 'e', got %q", got)
	}
}

func TestIndexAssignmentMutatesInPlace(t *testing.T) {
	result := mustEval(t, "t := [1, 2, 3,]; t[1] = 20; t")
	if got := result.String(); !strings.Contains(got, "20") {
		t.Errorf("expected mutated tensor to contain 20, got %q", got)
	}
}

func TestFieldAssignmentOnDict(t *testing.T) {
	result := mustEval(t, "d := (a=1,); d.a = 9; d.a")
	if got := result.String(); got != "9" {
		t.Errorf("expected 9, got %q", got)
	}
}

// Comprehensions (spec §4.9).
func TestDictComprehension(t *testing.T) {
	result := mustEval(t, ":Dict(x=1, y=2,)")
	d, ok := result.(*object.Dict)
	if !ok {
		t.Fatalf("expected *object.Dict, got %T", result)
	}
	if d.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", d.Len())
	}
}

func TestInferredShapeTensorComprehension(t *testing.T) {
	result := mustEval(t, ":Float64(1, 2, 3)")
	tn, ok := result.(*object.Tensor)
	if !ok {
		t.Fatalf("expected a Tensor, got %T", result)
	}
	if len(tn.Shape) != 1 || tn.Shape[0] != 3 {
		t.Errorf("expected shape [3], got %v", tn.Shape)
	}
}

// Underrun fill: a trailing "..." marks the last argument as a repeating
// filler for any shape underrun (spec §4.9).
func TestTensorComprehensionUnderrunFiller(t *testing.T) {
	result := mustEval(t, ":Int32[4](1, 2, 0, ...)")
	tn, ok := result.(*object.Tensor)
	if !ok {
		t.Fatalf("expected a Tensor, got %T", result)
	}
	want := []float64{1, 2, 0, 0}
	for i, w := range want {
		if tn.Data[i] != w {
			t.Errorf("data[%d]: expected %v, got %v", i, w, tn.Data[i])
		}
	}
}

// Overrun is a hard error (spec §4.9).
func TestTensorComprehensionOverrunErrors(t *testing.T) {
	err := evalErr(t, ":Int32[2](1, 2, 3)")
	if !strings.Contains(err.Error(), "overrun") {
		t.Errorf("expected an overrun error, got %v", err)
	}
}

// An automatic "..." dimension is inferred from the element count and
// the declared dimensions' product (spec §4.9).
func TestTensorComprehensionAutomaticDimension(t *testing.T) {
	result := mustEval(t, ":Int32[2, ...](1, 2, 3, 4, 5, 6)")
	tn, ok := result.(*object.Tensor)
	if !ok {
		t.Fatalf("expected a Tensor, got %T", result)
	}
	if len(tn.Shape) != 2 || tn.Shape[0] != 2 || tn.Shape[1] != 3 {
		t.Errorf("expected shape [2,3], got %v", tn.Shape)
	}
}

// FFI bridge (spec §4.10), exercised against ffi.ReflectInvoker rather
// than a real libffi trampoline (spec §1: "only the contract... is
// needed"; pkg/ffi's own doc comment names ReflectInvoker as the
// in-process double for exactly this).
func TestFFICallViaReflectInvoker(t *testing.T) {
	invoker := ffi.NewReflectInvoker()
	invoker.Register("add", func(a, b int64) int64 { return a + b })

	e := New()
	e.Natives.Load("mathlib", invoker, invoker)

	term, err := parser.ParseString("test.nl", `add := :Pointer('add(a:Int64, b:Int64):Int64', 'mathlib'); add(2, 3)`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	result, err := e.Eval(term)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got := result.String(); got != "5" {
		t.Errorf("expected 5, got %q", got)
	}
}

func TestFFIUnresolvedModuleErrors(t *testing.T) {
	e := New()
	term, err := parser.ParseString("test.nl", `add := :Pointer('add(a:Int64, b:Int64):Int64', 'missing'); add(1, 2)`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := e.Eval(term); err == nil {
		t.Fatal("expected an error calling into an unloaded native module")
	}
}

// LoadSession: each preloaded file evaluates against the same
// session/global frames, so a later file can see an earlier one's
// bindings.
func TestLoadSessionSharesFrames(t *testing.T) {
	dir := t.TempDir()
	first := dir + "/first.nl"
	second := dir + "/second.nl"
	if err := writeFile(first, "$.base := 10"); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := writeFile(second, "$.base + 5"); err != nil {
		t.Fatalf("write second: %v", err)
	}

	e := New()
	if err := e.LoadSession(first, second); err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if got := mustEvalAgainst(t, e, "$base").String(); got != "10" {
		t.Errorf("expected session binding to persist, got %q", got)
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
