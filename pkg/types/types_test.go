package types

import "testing"

func TestLookupRoundTripsNames(t *testing.T) {
	for k, name := range names {
		got, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q): expected ok", name)
		}
		if got != k {
			t.Errorf("Lookup(%q): expected %s, got %s", name, k, got)
		}
	}
	if _, ok := Lookup("NotAKind"); ok {
		t.Error("expected Lookup to reject an unknown name")
	}
}

func TestPromoteNumericChain(t *testing.T) {
	tests := []struct {
		a, b, want Kind
	}{
		{Bool, Int8, Int8},
		{Int8, Int64, Int64},
		{Int64, Float32, Float32},
		{Float32, Float64, Float64},
		{Int8, Int8, Int8},
	}
	for _, tc := range tests {
		got, ok := Promote(tc.a, tc.b)
		if !ok {
			t.Fatalf("Promote(%s, %s): expected ok", tc.a, tc.b)
		}
		if got != tc.want {
			t.Errorf("Promote(%s, %s): expected %s, got %s", tc.a, tc.b, tc.want, got)
		}
	}
}

func TestPromoteFractionRules(t *testing.T) {
	if got, ok := Promote(Fraction, Int64); !ok || got != Float64 {
		t.Errorf("Fraction+Int64: expected Float64, got %s (ok=%v)", got, ok)
	}
	if got, ok := Promote(Int32, Fraction); !ok || got != Float64 {
		t.Errorf("Int32+Fraction: expected Float64, got %s (ok=%v)", got, ok)
	}
	if got, ok := Promote(Fraction, Fraction); !ok || got != Fraction {
		t.Errorf("Fraction+Fraction: expected Fraction, got %s (ok=%v)", got, ok)
	}
}

func TestPromoteRejectsNonNumeric(t *testing.T) {
	if _, ok := Promote(StrChar, Int64); ok {
		t.Error("expected Promote to reject a non-numeric operand")
	}
}

func TestIsSubtypeLattice(t *testing.T) {
	if !IsSubtype(Int8, Int8) {
		t.Error("a kind should be its own subtype")
	}
	if !IsSubtype(Bool, Int64) {
		t.Error("Bool should be a transitive subtype of Int64")
	}
	if !IsSubtype(Int8, Any) {
		t.Error("every kind should be a subtype of Any")
	}
	if IsSubtype(Int64, Bool) {
		t.Error("Int64 should not be a subtype of Bool")
	}
	if IsSubtype(StrChar, StrWide) {
		t.Error("StrChar and StrWide are unrelated kinds")
	}
}

func TestFFIName(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{Bool, "uint8"},
		{Int64, "sint64"},
		{Float64, "double"},
		{StrChar, "pointer(char)"},
		{Dict, ""},
	}
	for _, tc := range tests {
		if got := FFIName(tc.k); got != tc.want {
			t.Errorf("FFIName(%s): expected %q, got %q", tc.k, tc.want, got)
		}
	}
}

func TestFitsAndNarrowest(t *testing.T) {
	if !Fits(Int8, 127) || Fits(Int8, 128) {
		t.Error("Int8 bounds incorrect")
	}
	if !Fits(Bool, 1) || Fits(Bool, 2) {
		t.Error("Bool bounds incorrect")
	}

	tests := []struct {
		v    int64
		want Kind
	}{
		{0, Bool},
		{1, Bool},
		{2, Int8},
		{200, Int16},
		{1 << 20, Int32},
		{1 << 40, Int64},
	}
	for _, tc := range tests {
		if got := Narrowest(tc.v); got != tc.want {
			t.Errorf("Narrowest(%d): expected %s, got %s", tc.v, tc.want, got)
		}
	}
}
