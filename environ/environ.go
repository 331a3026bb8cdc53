// Package environ provides the chained mutable scope the interpreter
// runs against. A chain goes from the innermost scope out to globals;
// closures keep whole chains alive past block exit simply by holding a
// reference to their tail.
package environ

import (
	"errors"
	"fmt"
)

var ErrUndefined = errors.New("undefined variable")

type Env[T any] struct {
	parent *Env[T]
	values map[string]T
}

func Empty[T any]() *Env[T] {
	return Enclosed[T](nil)
}

func Enclosed[T any](parent *Env[T]) *Env[T] {
	return &Env[T]{
		parent: parent,
		values: make(map[string]T),
	}
}

// Define inserts or overwrites a binding in this scope only.
func (e *Env[T]) Define(ident string, value T) {
	e.values[ident] = value
}

// Resolve searches this scope, then the enclosing chain.
func (e *Env[T]) Resolve(ident string) (T, error) {
	if v, ok := e.values[ident]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Resolve(ident)
	}
	var zero T
	return zero, fmt.Errorf("%s: %w", ident, ErrUndefined)
}

// Assign overwrites an existing binding wherever the chain holds it. It
// never declares: assigning an unknown name is an error.
func (e *Env[T]) Assign(ident string, value T) error {
	if _, ok := e.values[ident]; ok {
		e.values[ident] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(ident, value)
	}
	return fmt.Errorf("%s: %w", ident, ErrUndefined)
}

// ResolveAt reads from the scope exactly depth links up the chain, with
// no search. Used once the resolver has pinned a binding distance.
func (e *Env[T]) ResolveAt(depth int, ident string) (T, error) {
	at := e.ancestor(depth)
	if at != nil {
		if v, ok := at.values[ident]; ok {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s: %w", ident, ErrUndefined)
}

// AssignAt writes into the scope exactly depth links up the chain.
func (e *Env[T]) AssignAt(depth int, ident string, value T) error {
	at := e.ancestor(depth)
	if at == nil {
		return fmt.Errorf("%s: %w", ident, ErrUndefined)
	}
	at.values[ident] = value
	return nil
}

func (e *Env[T]) ancestor(depth int) *Env[T] {
	at := e
	for ; depth > 0 && at != nil; depth-- {
		at = at.parent
	}
	return at
}
