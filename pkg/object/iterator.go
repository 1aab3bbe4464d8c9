package object

import (
	"regexp"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// Sequence is anything an Iterator can walk: a Dictionary, class
// instance, range, or string-as-sequence (spec §4.8). Each element is
// exposed as a Dict Entry so named entries (dictionaries, classes) and
// positional-only entries (ranges, strings) share one cursor shape.
type Sequence interface {
	Len() int
	EntryAt(i int) Entry
}

type dictSeq struct{ d *Dict }

func (s dictSeq) Len() int           { return len(s.d.Entries) }
func (s dictSeq) EntryAt(i int) Entry { return s.d.Entries[i] }

type stringSeq struct{ s *String }

func (s stringSeq) Len() int { return len(s.s.Runes) }
func (s stringSeq) EntryAt(i int) Entry {
	return Entry{Value: &String{Runes: []rune{s.s.Runes[i]}, Wide: s.s.Wide}}
}

type rangeSeq struct{ vals []float64 }

func (s rangeSeq) Len() int { return len(s.vals) }
func (s rangeSeq) EntryAt(i int) Entry {
	return Entry{Value: NewScalar(types.Float64, s.vals[i])}
}

// SequenceOf adapts o into a Sequence for iteration, or returns false if
// o has no sequence form.
func SequenceOf(o Object) (Sequence, bool) {
	switch v := o.(type) {
	case *Dict:
		return dictSeq{v}, true
	case *Class:
		return dictSeq{v.Dict}, true
	case *String:
		return stringSeq{v}, true
	case *Range:
		return rangeSeq{v.Enumerate()}, true
	default:
		return nil, false
	}
}

// Iterator is a cursor over a Sequence, or over a name-filtering view of
// one (spec §4.8).
type Iterator struct {
	seq     Sequence
	pos     int
	pattern *regexp.Regexp // non-nil for a filtering iterator
	indices []int          // precomputed matches, when pattern != nil
}

// NewIterator builds a plain cursor (`obj?`).
func NewIterator(seq Sequence) *Iterator {
	return &Iterator{seq: seq}
}

// NewFilterIterator builds a filtering cursor (`obj?(regex)`) yielding
// only entries whose name matches the anchored pattern; "" matches
// unnamed (positional) entries (spec §4.8).
func NewFilterIterator(seq Sequence, pattern string) (*Iterator, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, &diagnostic.ValueError{Msg: "invalid iterator filter pattern: " + err.Error()}
	}
	it := &Iterator{seq: seq, pattern: re}
	for i := 0; i < seq.Len(); i++ {
		if re.MatchString(seq.EntryAt(i).Name) {
			it.indices = append(it.indices, i)
		}
	}
	return it, nil
}

func (it *Iterator) Kind() types.Kind { return types.Iterator }
func (it *Iterator) String() string   { return "Iterator" }

func (it *Iterator) len() int {
	if it.pattern != nil {
		return len(it.indices)
	}
	return it.seq.Len()
}

func (it *Iterator) entryAt(logicalIdx int) Entry {
	if it.pattern != nil {
		return it.seq.EntryAt(it.indices[logicalIdx])
	}
	return it.seq.EntryAt(logicalIdx)
}

// Next advances and returns the current element, yielding IteratorEndValue
// when exhausted (repeatable after the end, spec §4.8).
func (it *Iterator) Next() Object {
	if it.pos >= it.len() {
		return IteratorEndValue
	}
	v := it.entryAt(it.pos).Value
	it.pos++
	return v
}

// NextN returns up to n elements as a Dict; negative n pads the tail
// with IteratorEndValue to exactly |n| entries (spec §4.8).
func (it *Iterator) NextN(n int) *Dict {
	if n < 0 {
		want := -n
		d := &Dict{}
		for i := 0; i < want; i++ {
			d.Append(Entry{Value: it.Next()})
		}
		return d
	}
	d := &Dict{}
	for i := 0; i < n; i++ {
		v := it.Next()
		if IsIteratorEnd(v) {
			break
		}
		d.Append(Entry{Value: v})
	}
	return d
}

// Peek returns the current element without advancing.
func (it *Iterator) Peek() Object {
	if it.pos >= it.len() {
		return IteratorEndValue
	}
	return it.entryAt(it.pos).Value
}

// Reset rewinds the cursor to the start.
func (it *Iterator) Reset() { it.pos = 0 }

// Rest materializes the full remaining sequence as a Dict (`obj?!`/`obj!?`).
func (it *Iterator) Rest() *Dict {
	d := &Dict{}
	for it.pos < it.len() {
		d.Append(Entry{Value: it.Next()})
	}
	return d
}

// IsIteratorEnd reports whether o is the IteratorEnd singleton.
func IsIteratorEnd(o Object) bool {
	s, ok := o.(singleton)
	return ok && s.kind == types.IteratorEnd
}
