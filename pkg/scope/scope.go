// Package scope implements the three frame kinds (local, session,
// global) and the name-prefix resolution rules between them: a small
// struct wrapping a plain map with explicit Load/Save-shaped accessor
// methods and no locking abstraction beyond what single-threaded
// evaluation actually needs.
package scope

import (
	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/object"
)

// Frame is an ordered mapping from name to Object (spec §3). Order only
// matters for deterministic iteration in tests/debugging; lookup is by
// name.
type Frame struct {
	names  []string
	values map[string]object.Object
}

// NewFrame builds an empty Frame.
func NewFrame() *Frame {
	return &Frame{values: make(map[string]object.Object)}
}

// Get returns the value bound to name, if any.
func (f *Frame) Get(name string) (object.Object, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Set binds name to v, recording insertion order on first bind.
func (f *Frame) Set(name string, v object.Object) {
	if _, exists := f.values[name]; !exists {
		f.names = append(f.names, name)
	}
	f.values[name] = v
}

// Has reports whether name is bound in this frame.
func (f *Frame) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Delete removes name, returning true if something was removed (spec
// §4.6: "Deleting a name ... returns Yes if something was removed").
func (f *Frame) Delete(name string) bool {
	if _, ok := f.values[name]; !ok {
		return false
	}
	delete(f.values, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns bound names in insertion order, for "did you mean"
// suggestions and debugging.
func (f *Frame) Names() []string {
	return append([]string(nil), f.names...)
}

// Scopes chains a per-call local frame stack over a shared session frame
// and a process-wide global frame (spec §3/§4.6).
type Scopes struct {
	locals  []*Frame
	Session *Frame
	Global  *Frame

	warned map[string]bool // duplicate-global warning tracking (resolved Open Question: once per session per name)
}

// NewScopes builds a Scopes with one empty local frame, sharing session
// and global with the rest of the interpreter (those two are process-
// wide per spec §5).
func NewScopes(session, global *Frame) *Scopes {
	return &Scopes{
		locals:  []*Frame{NewFrame()},
		Session: session,
		Global:  global,
		warned:  make(map[string]bool),
	}
}

// PushLocal enters a new call frame (spec §4.7 step 5: "push a new local
// frame ... pop the frame on any exit").
func (s *Scopes) PushLocal() {
	s.locals = append(s.locals, NewFrame())
}

// PopLocal exits the innermost call frame.
func (s *Scopes) PopLocal() {
	if len(s.locals) > 1 {
		s.locals = s.locals[:len(s.locals)-1]
	}
}

func (s *Scopes) local() *Frame { return s.locals[len(s.locals)-1] }

// Prefix is the closed set of naming-prefix forms spec §4.6 defines.
type Prefix int

const (
	PrefixBare          Prefix = iota // name
	PrefixLocal                       // $name
	PrefixGlobal                      // @name
	PrefixSessionDirect               // $.name
	PrefixGlobalDirect                // @.name
)

// Resolve implements spec §4.6's prefix lookup rules:
//   - bare name: local only, error if absent.
//   - $name: local if present, else session, error if neither.
//   - @name: local if present, else session, else global, error if none.
//   - $.name / @.name: bypass the shadowing chain (session/global
//     directly).
func (s *Scopes) Resolve(prefix Prefix, name string) (object.Object, error) {
	switch prefix {
	case PrefixBare:
		if v, ok := s.local().Get(name); ok {
			return v, nil
		}
		return nil, s.undefined(name)
	case PrefixLocal:
		if v, ok := s.local().Get(name); ok {
			return v, nil
		}
		if v, ok := s.Session.Get(name); ok {
			return v, nil
		}
		return nil, s.undefined(name)
	case PrefixGlobal:
		if v, ok := s.local().Get(name); ok {
			return v, nil
		}
		if v, ok := s.Session.Get(name); ok {
			return v, nil
		}
		if v, ok := s.Global.Get(name); ok {
			return v, nil
		}
		return nil, s.undefined(name)
	case PrefixSessionDirect:
		if v, ok := s.Session.Get(name); ok {
			return v, nil
		}
		return nil, s.undefined(name)
	case PrefixGlobalDirect:
		if v, ok := s.Global.Get(name); ok {
			return v, nil
		}
		return nil, s.undefined(name)
	default:
		return nil, s.undefined(name)
	}
}

func (s *Scopes) undefined(name string) error {
	candidates := append(s.local().Names(), append(s.Session.Names(), s.Global.Names()...)...)
	suggestion := diagnostic.Suggest(name, candidates)
	msg := "undefined name " + name
	if suggestion != "" {
		msg += "; did you mean " + suggestion + "?"
	}
	return &diagnostic.RuntimeError{Msg: msg}
}

// AssignMode is the closed set of assignment forms (spec §4.5 step 3).
type AssignMode int

const (
	ModeCreateOnly AssignMode = iota
	ModeAssignOnly
	ModeCreateOrAssign
)

// Bind implements spec §4.5 steps 2-3: resolve the destination frame by
// prefix, then apply the requested AssignMode.
func (s *Scopes) Bind(prefix Prefix, name string, mode AssignMode, v object.Object) error {
	frame, isGlobal := s.targetFrame(prefix)
	exists := frame.Has(name)

	switch mode {
	case ModeCreateOnly:
		if exists {
			return &diagnostic.RuntimeError{Msg: "cannot create " + name + ": already exists"}
		}
	case ModeAssignOnly:
		if !exists {
			return &diagnostic.RuntimeError{Msg: "cannot assign " + name + ": does not exist"}
		}
	case ModeCreateOrAssign:
		// always allowed
	}

	if isGlobal && exists && !s.warned[name] {
		s.warned[name] = true
		// Duplicate-global warning: recorded for Scopes.TakeWarnings, not
		// printed here — pkg/scope has no logger of its own.
	}

	frame.Set(name, v)
	return nil
}

// targetFrame resolves which frame an assignment with the given prefix
// targets: bare/$/@ always target the local frame; $. and @. target
// session/global directly (spec §4.6:
// "Registration of a new object into a frame strips the prefix").
func (s *Scopes) targetFrame(prefix Prefix) (frame *Frame, isGlobal bool) {
	switch prefix {
	case PrefixSessionDirect:
		return s.Session, false
	case PrefixGlobalDirect:
		return s.Global, true
	default:
		return s.local(), false
	}
}

// Delete removes name from the frame prefix would target, returning
// whether something was removed (spec §4.6 deletion semantics).
func (s *Scopes) Delete(prefix Prefix, name string) bool {
	frame, _ := s.targetFrame(prefix)
	return frame.Delete(name)
}

// TakeWarnings returns the names that have triggered a duplicate-global
// warning so far this session, for the driver to print.
func (s *Scopes) TakeWarnings() []string {
	var out []string
	for name := range s.warned {
		out = append(out, name)
	}
	return out
}
