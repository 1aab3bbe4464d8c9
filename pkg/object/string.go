package object

import (
	"fmt"
	"strings"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// String is either a byte-string or a wide (Unicode codepoint) string,
// indexable element-wise (spec §3). Both flavors store []rune; Wide
// controls the printed quote style and the StrWide/StrChar kind tag.
type String struct {
	Runes []rune
	Wide  bool
}

// NewString builds a String from Go text.
func NewString(s string, wide bool) *String {
	return &String{Runes: []rune(s), Wide: wide}
}

func (s *String) Kind() types.Kind {
	if s.Wide {
		return types.StrWide
	}
	return types.StrChar
}

// String prints with the appropriate quote style (spec §4.4).
func (s *String) String() string {
	q := `'`
	if s.Wide {
		q = `"`
	}
	return q + strings.ReplaceAll(string(s.Runes), q, `\`+q) + q
}

// Text returns the plain Go string content.
func (s *String) Text() string { return string(s.Runes) }

// Concat implements `++`: strings concatenate as strings.
func (s *String) Concat(o *String) *String {
	return &String{Runes: append(append([]rune(nil), s.Runes...), o.Runes...), Wide: s.Wide || o.Wide}
}

// Compare implements lexicographic `<`,`<=`,`>`,`>=`.
func (s *String) Compare(o *String) int {
	return strings.Compare(string(s.Runes), string(o.Runes))
}

// Equals implements `==`/`===` (strings have no cross-kind promotion).
func (s *String) Equals(o *String) bool {
	return string(s.Runes) == string(o.Runes)
}

// Index returns the i-th code unit as a one-rune String (spec §4.4);
// out-of-range throws per the resolved Open Question (never clamps).
func (s *String) Index(i int) (*String, error) {
	idx := i
	if idx < 0 {
		idx += len(s.Runes)
	}
	if idx < 0 || idx >= len(s.Runes) {
		return nil, &diagnostic.RuntimeError{Msg: fmt.Sprintf("string index %d out of range [0,%d)", i, len(s.Runes))}
	}
	return &String{Runes: []rune{s.Runes[idx]}, Wide: s.Wide}, nil
}

// SetIndex mutates one code unit in place (spec §3: "op_set_index mutates
// one code unit").
func (s *String) SetIndex(i int, v rune) error {
	idx := i
	if idx < 0 {
		idx += len(s.Runes)
	}
	if idx < 0 || idx >= len(s.Runes) {
		return &diagnostic.RuntimeError{Msg: fmt.Sprintf("string index %d out of range [0,%d)", i, len(s.Runes))}
	}
	s.Runes[idx] = v
	return nil
}

// Slice implements Range-indexing (spec §4.4 "a Range (slice)").
func (s *String) Slice(start, stop, step int) *String {
	var out []rune
	if step > 0 {
		for i := start; i < stop; i += step {
			if i >= 0 && i < len(s.Runes) {
				out = append(out, s.Runes[i])
			}
		}
	} else if step < 0 {
		for i := start; i > stop; i += step {
			if i >= 0 && i < len(s.Runes) {
				out = append(out, s.Runes[i])
			}
		}
	}
	return &String{Runes: out, Wide: s.Wide}
}
