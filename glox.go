// Package glox implements a tree-walking interpreter for Lox, a small
// dynamically-typed scripting language with C-like syntax, first-class
// functions, closures and lexical scoping. The pipeline runs scanner,
// parser, resolver and evaluator in that order; any static error stops
// the program before execution starts.
package glox

import "io"

// Load runs the static half of the pipeline: scan, parse, resolve. On
// success it returns the statements and the resolver's binding table,
// ready for Interp.Run. On failure it returns every error found; a
// program with any static error must not be executed.
func Load(r io.Reader) ([]Stmt, map[Expr]int, []error) {
	tokens, err := Scan(r)
	if err != nil {
		return nil, nil, []error{err}
	}
	stmts, errs := Parse(tokens)
	if len(errs) > 0 {
		return nil, nil, errs
	}
	locals, err := Resolve(stmts)
	if err != nil {
		return nil, nil, []error{err}
	}
	return stmts, locals, nil
}
