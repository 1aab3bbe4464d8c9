package object

import (
	"fmt"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// Class is a Dictionary plus a class name and an ordered list of parent
// class references (spec §3), used by the `~` type-predicate family to
// test instance-of-ancestor relationships.
type Class struct {
	*Dict
	Name    string
	Parents []*Class
}

// NewClass builds a Class with no parents.
func NewClass(name string, dict *Dict) *Class {
	return &Class{Dict: dict, Name: name}
}

func (c *Class) Kind() types.Kind { return types.Class }

func (c *Class) String() string {
	return fmt.Sprintf("%s%s", c.Name, c.Dict.String())
}

// SetParents assigns c's ancestry, performing the acyclicity DFS at
// assignment time rather than at construction, so a cycle introduced by
// a later reparenting is caught too.
func (c *Class) SetParents(parents []*Class) error {
	for _, p := range parents {
		if p == c || reachable(p, c) {
			return &diagnostic.ValueError{Msg: fmt.Sprintf("class %q ancestry would form a cycle through %q", c.Name, p.Name)}
		}
	}
	c.Parents = parents
	return nil
}

func reachable(from, target *Class) bool {
	if from == target {
		return true
	}
	for _, p := range from.Parents {
		if reachable(p, target) {
			return true
		}
	}
	return false
}

// IsInstanceOf implements the Class-instance branch of the `~` predicate
// (spec §4.4: "T matches the instance's class or any ancestor").
func (c *Class) IsInstanceOf(name string) bool {
	if c.Name == name {
		return true
	}
	for _, p := range c.Parents {
		if p.IsInstanceOf(name) {
			return true
		}
	}
	return false
}
