package object

import (
	"fmt"
	"strings"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// Entry is one (name?, Object) pair in a Dict; Name is empty for a
// positional entry (spec §3: "names need not be unique").
type Entry struct {
	Name  string
	Value Object
}

// Dict is an ordered sequence of Entry, the one general-purpose
// container the runtime has (spec §3: "Dictionary").
type Dict struct {
	Entries []Entry
}

// NewDict builds a Dict from entries.
func NewDict(entries ...Entry) *Dict { return &Dict{Entries: entries} }

func (d *Dict) Kind() types.Kind { return types.Dict }

func (d *Dict) String() string {
	var b strings.Builder
	b.WriteString("(")
	for _, e := range d.Entries {
		if e.Name != "" {
			fmt.Fprintf(&b, "%s=", e.Name)
		}
		b.WriteString(e.Value.String())
		b.WriteString(", ")
	}
	b.WriteString(")")
	return b.String()
}

// Len returns the entry count.
func (d *Dict) Len() int { return len(d.Entries) }

// At returns the i-th entry's value (positional access).
func (d *Dict) At(i int) (Object, error) {
	idx := i
	if idx < 0 {
		idx += len(d.Entries)
	}
	if idx < 0 || idx >= len(d.Entries) {
		return nil, &diagnostic.RuntimeError{Msg: fmt.Sprintf("dict index %d out of range [0,%d)", i, len(d.Entries))}
	}
	return d.Entries[idx].Value, nil
}

// ByName returns the first entry whose Name matches (named access; spec
// §4.4 "named access by string").
func (d *Dict) ByName(name string) (Object, bool) {
	for _, e := range d.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// SetAt replaces the element at index i.
func (d *Dict) SetAt(i int, v Object) error {
	idx := i
	if idx < 0 {
		idx += len(d.Entries)
	}
	if idx < 0 || idx >= len(d.Entries) {
		return &diagnostic.RuntimeError{Msg: fmt.Sprintf("dict index %d out of range [0,%d)", i, len(d.Entries))}
	}
	d.Entries[idx].Value = v
	return nil
}

// SetByName replaces (or appends, if absent) the named entry.
func (d *Dict) SetByName(name string, v Object) {
	for i := range d.Entries {
		if d.Entries[i].Name == name {
			d.Entries[i].Value = v
			return
		}
	}
	d.Entries = append(d.Entries, Entry{Name: name, Value: v})
}

// Append adds an entry at the end.
func (d *Dict) Append(e Entry) { d.Entries = append(d.Entries, e) }

// InsertBefore inserts e before index i.
func (d *Dict) InsertBefore(i int, e Entry) error {
	idx := i
	if idx < 0 {
		idx += len(d.Entries)
	}
	if idx < 0 || idx > len(d.Entries) {
		return &diagnostic.RuntimeError{Msg: fmt.Sprintf("dict insert index %d out of range [0,%d]", i, len(d.Entries))}
	}
	d.Entries = append(d.Entries, Entry{})
	copy(d.Entries[idx+1:], d.Entries[idx:])
	d.Entries[idx] = e
	return nil
}

// Remove deletes the entry at index i, returning true if something was
// removed (used by the `name = _` deletion form, spec §4.6).
func (d *Dict) Remove(i int) bool {
	idx := i
	if idx < 0 {
		idx += len(d.Entries)
	}
	if idx < 0 || idx >= len(d.Entries) {
		return false
	}
	d.Entries = append(d.Entries[:idx], d.Entries[idx+1:]...)
	return true
}

// RemoveByName deletes the first entry named name, returning true if
// something was removed.
func (d *Dict) RemoveByName(name string) bool {
	for i, e := range d.Entries {
		if e.Name == name {
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// Concat implements `++`: dictionaries append their elements.
func (d *Dict) Concat(o *Dict) *Dict {
	return &Dict{Entries: append(append([]Entry(nil), d.Entries...), o.Entries...)}
}
