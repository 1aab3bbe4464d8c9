package macro

import (
	"strings"
	"testing"
)

func TestExpandSimpleMacro(t *testing.T) {
	s := NewStore()
	src := `\\greet hello \\\ \greet`
	out, err := s.Expand(src)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got := strings.TrimSpace(out); got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
}

func TestCountDefsCountsTopLevelMacros(t *testing.T) {
	src := `\\one 1 \\\ \\two(a) $a \\\ \one \two(1)`
	n, err := CountDefs(src)
	if err != nil {
		t.Fatalf("CountDefs: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 macro definitions, got %d", n)
	}
}

func TestCountDefsNoDefinitions(t *testing.T) {
	n, err := CountDefs("x := 1")
	if err != nil {
		t.Fatalf("CountDefs: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 macro definitions, got %d", n)
	}
}

func TestExpandParameterizedMacro(t *testing.T) {
	s := NewStore()
	src := `\\add(a,b) $1 + $2 \\\ \add(1,2)`
	out, err := s.Expand(src)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got := strings.TrimSpace(out); got != "1 + 2" {
		t.Errorf("expected %q, got %q", "1 + 2", got)
	}
}

func TestExpandByParamName(t *testing.T) {
	s := NewStore()
	src := `\\add(a,b) $a + $b \\\ \add(3,4)`
	out, err := s.Expand(src)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got := strings.TrimSpace(out); got != "3 + 4" {
		t.Errorf("expected %q, got %q", "3 + 4", got)
	}
}

func TestExtractionPreservesLineOffsets(t *testing.T) {
	s := NewStore()
	src := "\\\\greet hello \\\\\\\nline2"
	out, err := s.Expand(src)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !strings.HasSuffix(out, "\nline2") {
		t.Errorf("expected the trailing newline and line2 to survive extraction, got %q", out)
	}
}

func TestArityMismatchIsAnError(t *testing.T) {
	s := NewStore()
	src := `\\add(a,b) $1 + $2 \\\ \add(1)`
	if _, err := s.Expand(src); err == nil {
		t.Fatal("expected an arity error")
	} else if _, ok := err.(*ArityError); !ok {
		t.Errorf("expected *ArityError, got %T (%v)", err, err)
	}
}

func TestDuplicateDifferentBodyIsAnError(t *testing.T) {
	s := NewStore()
	src := `\\greet hello \\\ \\greet world \\\ \greet`
	if _, err := s.Expand(src); err == nil {
		t.Fatal("expected a duplicate-definition error")
	} else if _, ok := err.(*DuplicateError); !ok {
		t.Errorf("expected *DuplicateError, got %T (%v)", err, err)
	}
}

func TestDuplicateIdenticalBodyIsIdempotent(t *testing.T) {
	s := NewStore()
	src := `\\greet hello \\\ \\greet hello \\\ \greet`
	out, err := s.Expand(src)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got := strings.TrimSpace(out); got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
}

func TestUnresolvedUseIsLeftUntouched(t *testing.T) {
	s := NewStore()
	out, err := s.Expand(`\nosuchmacro`)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if out != `\nosuchmacro` {
		t.Errorf("expected the unresolved use to pass through unchanged, got %q", out)
	}
}

func TestSplitArgsRespectsParensAndEscapes(t *testing.T) {
	got := splitArgs(`a, f(1,2), 3\,4`)
	want := []string{"a", "f(1,2)", "3,4"}
	if len(got) != len(want) {
		t.Fatalf("expected %d args, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
