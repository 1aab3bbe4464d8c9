package scope

import (
	"testing"

	"github.com/gaarutyunov/newlang/pkg/object"
	"github.com/gaarutyunov/newlang/pkg/types"
)

func TestShadowingLocalOverSession(t *testing.T) {
	session := NewFrame()
	global := NewFrame()
	s := NewScopes(session, global)

	session.Set("x", object.NewScalar(types.Int8, 1))
	if err := s.Bind(PrefixBare, "x", ModeCreateOnly, object.NewScalar(types.Int8, 2)); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	v, err := s.Resolve(PrefixLocal, "x")
	if err != nil {
		t.Fatalf("Resolve $x: %v", err)
	}
	if v.(*object.Tensor).Data[0] != 2 {
		t.Fatalf("expected $x to resolve to the local shadow, got %v", v)
	}

	direct, err := s.Resolve(PrefixSessionDirect, "x")
	if err != nil {
		t.Fatalf("Resolve $.x: %v", err)
	}
	if direct.(*object.Tensor).Data[0] != 1 {
		t.Fatalf("expected $.x to bypass the shadow, got %v", direct)
	}
}

func TestBareNameLocalOnly(t *testing.T) {
	session := NewFrame()
	global := NewFrame()
	s := NewScopes(session, global)
	session.Set("y", object.NewScalar(types.Int8, 1))

	if _, err := s.Resolve(PrefixBare, "y"); err == nil {
		t.Fatalf("expected bare name to ignore session frame")
	}
}

func TestCreateOnlyRejectsExisting(t *testing.T) {
	session := NewFrame()
	global := NewFrame()
	s := NewScopes(session, global)
	_ = s.Bind(PrefixBare, "z", ModeCreateOnly, object.NewScalar(types.Int8, 1))
	if err := s.Bind(PrefixBare, "z", ModeCreateOnly, object.NewScalar(types.Int8, 2)); err == nil {
		t.Fatalf("expected create-only to reject an existing name")
	}
}

func TestAssignOnlyRejectsMissing(t *testing.T) {
	session := NewFrame()
	global := NewFrame()
	s := NewScopes(session, global)
	if err := s.Bind(PrefixBare, "w", ModeAssignOnly, object.NewScalar(types.Int8, 1)); err == nil {
		t.Fatalf("expected assign-only to reject a missing name")
	}
}

func TestDeleteReportsWhetherSomethingWasRemoved(t *testing.T) {
	session := NewFrame()
	global := NewFrame()
	s := NewScopes(session, global)
	_ = s.Bind(PrefixBare, "a", ModeCreateOnly, object.NewScalar(types.Int8, 1))
	if !s.Delete(PrefixBare, "a") {
		t.Fatalf("expected deletion to report true")
	}
	if s.Delete(PrefixBare, "a") {
		t.Fatalf("expected second deletion to report false")
	}
}

func TestDuplicateGlobalWarnsOncePerName(t *testing.T) {
	session := NewFrame()
	global := NewFrame()
	s := NewScopes(session, global)
	_ = s.Bind(PrefixGlobalDirect, "g", ModeCreateOrAssign, object.NewScalar(types.Int8, 1))
	_ = s.Bind(PrefixGlobalDirect, "g", ModeCreateOrAssign, object.NewScalar(types.Int8, 2))
	_ = s.Bind(PrefixGlobalDirect, "g", ModeCreateOrAssign, object.NewScalar(types.Int8, 3))
	if len(s.TakeWarnings()) != 1 {
		t.Fatalf("expected exactly one warned name, got %d", len(s.TakeWarnings()))
	}
}
