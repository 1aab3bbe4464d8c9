package object

import (
	"fmt"
	"math/big"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// Fraction is an arbitrary-precision signed rational (spec §3). It is
// the one deliberately stdlib-based value type in this package: no
// third-party library in the pack implements an exact rational (the
// closest, shopspring/decimal, is base-10 fixed/floating point, not a
// numerator/denominator pair), so math/big.Int is used directly — see
// DESIGN.md's justification entry.
type Fraction struct {
	Num *big.Int
	Den *big.Int
}

// NewFraction builds a reduced Fraction from num/den, enforcing I3
// (always reduced, denominator > 0).
func NewFraction(num, den int64) (*Fraction, error) {
	return NewFractionBig(big.NewInt(num), big.NewInt(den))
}

// NewFractionBig is NewFraction for arbitrary-precision inputs.
func NewFractionBig(num, den *big.Int) (*Fraction, error) {
	if den.Sign() == 0 {
		return nil, &diagnostic.ValueError{Msg: "fraction denominator must be non-zero"}
	}
	n := new(big.Int).Set(num)
	d := new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Sign() != 0 {
		n.Quo(n, g)
		d.Quo(d, g)
	}
	return &Fraction{Num: n, Den: d}, nil
}

func (f *Fraction) Kind() types.Kind { return types.Fraction }

// String prints as "N\D" per spec §4.4.
func (f *Fraction) String() string {
	return fmt.Sprintf(`%s\%s`, f.Num.String(), f.Den.String())
}

func (f *Fraction) cross(g *Fraction) (*big.Int, *big.Int) {
	return new(big.Int).Mul(f.Num, g.Den), new(big.Int).Mul(g.Num, f.Den)
}

// Add, Sub, Mul, Div implement exact fraction arithmetic, reduced after
// each operation (spec §4.4: "Fraction arithmetic is exact and reduced").
func (f *Fraction) Add(g *Fraction) (*Fraction, error) {
	a, b := f.cross(g)
	return NewFractionBig(new(big.Int).Add(a, b), new(big.Int).Mul(f.Den, g.Den))
}

func (f *Fraction) Sub(g *Fraction) (*Fraction, error) {
	a, b := f.cross(g)
	return NewFractionBig(new(big.Int).Sub(a, b), new(big.Int).Mul(f.Den, g.Den))
}

func (f *Fraction) Mul(g *Fraction) (*Fraction, error) {
	return NewFractionBig(new(big.Int).Mul(f.Num, g.Num), new(big.Int).Mul(f.Den, g.Den))
}

func (f *Fraction) Div(g *Fraction) (*Fraction, error) {
	if g.Num.Sign() == 0 {
		return nil, &diagnostic.ValueError{Msg: "division by zero fraction"}
	}
	return NewFractionBig(new(big.Int).Mul(f.Num, g.Den), new(big.Int).Mul(f.Den, g.Num))
}

func (f *Fraction) Neg() *Fraction {
	return &Fraction{Num: new(big.Int).Neg(f.Num), Den: new(big.Int).Set(f.Den)}
}

// Equals compares by cross-multiplication (both are already reduced, so
// this is equivalent to field equality, but cross-multiply matches the
// "by cross-multiply" wording spec §4.4 uses for ordering too).
func (f *Fraction) Equals(g *Fraction) bool {
	a, b := f.cross(g)
	return a.Cmp(b) == 0
}

// Compare implements `<`,`<=`,`>`,`>=` via cross-multiplication.
func (f *Fraction) Compare(g *Fraction) int {
	a, b := f.cross(g)
	return a.Cmp(b)
}

// Float64 converts to an approximate float64, used when a Fraction meets
// a Tensor and both promote to Float64 (spec §4.4).
func (f *Fraction) Float64() float64 {
	r := new(big.Rat).SetFrac(f.Num, f.Den)
	v, _ := r.Float64()
	return v
}
