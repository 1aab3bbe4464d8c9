// Package diagnostic implements the closed error taxonomy: ParseError,
// RuntimeError, TypeError, ValueError, SignalError, and the two
// control-flow carriers BreakInterruption/ReturnInterruption. Each
// carries a source position ("...: %w" wrapping plus a Position string
// field, the same shape pkg/parser and pkg/visitors use elsewhere in
// this style of codebase), and the package adds a "did you mean"
// name-suggestion helper built on smetrics' Jaro-Winkler distance.
package diagnostic

import (
	"fmt"

	"github.com/xrash/smetrics"
)

// Position is the minimal source-location every diagnostic carries. It
// mirrors pkg/token.Position's fields without importing that package, so
// diagnostic stays a leaf dependency any package can import.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// ParseError reports a lexical or grammatical failure.
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Msg) }

// RuntimeError reports an evaluation failure: unknown name, wrong arity,
// indexing out of range.
type RuntimeError struct {
	Pos Position
	Msg string
}

func (e *RuntimeError) Error() string { return fmt.Sprintf("runtime error at %s: %s", e.Pos, e.Msg) }

// TypeError reports a kind mismatch when a fixed type is involved.
type TypeError struct {
	Pos  Position
	Msg  string
	Want string
	Got  string
}

func (e *TypeError) Error() string {
	if e.Want == "" && e.Got == "" {
		return fmt.Sprintf("type error at %s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("type error at %s: %s (want %s, got %s)", e.Pos, e.Msg, e.Want, e.Got)
}

// ValueError reports numeric overflow against a fixed kind, a malformed
// fraction, or an empty range step.
type ValueError struct {
	Pos Position
	Msg string
}

func (e *ValueError) Error() string { return fmt.Sprintf("value error at %s: %s", e.Pos, e.Msg) }

// SignalError reports an async signal (SIGINT/SIGABRT) converted to a
// recoverable error at the next operation boundary.
type SignalError struct {
	Signal string
}

func (e *SignalError) Error() string { return fmt.Sprintf("signal received: %s", e.Signal) }

// BreakInterruption unwinds to the nearest enclosing loop. It is never
// caught by a try-block (spec §7: "never catchable").
type BreakInterruption struct {
	Pos   Position
	Value any
}

func (e *BreakInterruption) Error() string { return fmt.Sprintf("break at %s", e.Pos) }

// ReturnInterruption unwinds to the nearest enclosing function.
type ReturnInterruption struct {
	Pos   Position
	Value any
}

func (e *ReturnInterruption) Error() string { return fmt.Sprintf("return at %s", e.Pos) }

// IsControlFlow reports whether err is a Break/ReturnInterruption, i.e.
// a variant a try-block must let pass through unmodified.
func IsControlFlow(err error) bool {
	switch err.(type) {
	case *BreakInterruption, *ReturnInterruption:
		return true
	default:
		return false
	}
}

// Suggest returns the candidate closest to name by Jaro-Winkler distance,
// for "unknown name, did you mean X" diagnostics, or "" if candidates is
// empty or nothing scores above the threshold.
func Suggest(name string, candidates []string) string {
	best := ""
	bestScore := 0.0
	const threshold = 0.7
	for _, c := range candidates {
		score := smetrics.JaroWinkler(name, c, 0.7, 4)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	if bestScore < threshold {
		return ""
	}
	return best
}
