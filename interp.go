package glox

import (
	"errors"
	"fmt"
	"io"

	"glox/environ"
)

// Interp owns the global environment and the pointer to whichever scope
// is active. One instance is one session; independent instances share
// nothing.
type Interp struct {
	globals *environ.Env[Value]
	env     *environ.Env[Value]
	locals  map[Expr]int
	stdout  io.Writer
}

// New seeds the globals with the native bindings (clock) and points the
// print statement at stdout.
func New(stdout io.Writer) *Interp {
	globals := environ.Empty[Value]()
	globals.Define("clock", NewBuiltinFunc("clock", 0, execClock))
	return &Interp{
		globals: globals,
		env:     globals,
		locals:  make(map[Expr]int),
		stdout:  stdout,
	}
}

// Register defines a native callable into globals. Call it before the
// first Run.
func (ip *Interp) Register(ident string, fn Callable) {
	ip.globals.Define(ident, fn)
}

// Run executes the statements against the resolver's binding table. The
// table is merged, not replaced, so a prompt session can feed one line
// at a time into the same interpreter.
func (ip *Interp) Run(stmts []Stmt, locals map[Expr]int) error {
	for expr, depth := range locals {
		ip.locals[expr] = depth
	}
	for _, s := range stmts {
		if err := ip.execute(s); err != nil {
			var ret returnSignal
			if errors.As(err, &ret) {
				panic("glox: return escaped the call stack")
			}
			return err
		}
	}
	return nil
}

func (ip *Interp) execute(stmt Stmt) error {
	switch s := stmt.(type) {
	case *Block:
		return ip.executeBlock(s.Statements, environ.Enclosed(ip.env))
	case *Expression:
		_, err := ip.evaluate(s.Expr)
		return err
	case *Func:
		fn := Function{
			declaration: s,
			closure:     ip.env,
		}
		ip.env.Define(s.Name.Lexeme, &fn)
		return nil
	case *If:
		cond, err := ip.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if cond.True() {
			return ip.execute(s.Then)
		}
		if s.Else != nil {
			return ip.execute(s.Else)
		}
		return nil
	case *Print:
		v, err := ip.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(ip.stdout, v.String())
		return nil
	case *Return:
		value := getNil()
		if s.Value != nil {
			v, err := ip.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{value: value}
	case *Var:
		value := getNil()
		if s.Initializer != nil {
			v, err := ip.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		ip.env.Define(s.Name.Lexeme, value)
		return nil
	case *While:
		for {
			cond, err := ip.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !cond.True() {
				return nil
			}
			if err := ip.execute(s.Body); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%T unsupported node type", stmt)
	}
}

// executeBlock swaps the given environment in for the duration of the
// list and restores the previous one on every exit path, so a callable
// always returns with its caller's environment active.
func (ip *Interp) executeBlock(list []Stmt, env *environ.Env[Value]) error {
	prev := ip.env
	ip.env = env
	defer func() {
		ip.env = prev
	}()
	for _, s := range list {
		if err := ip.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interp) evaluate(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return literalValue(e.Value), nil
	case *Grouping:
		return ip.evaluate(e.Inner)
	case *Variable:
		return ip.lookup(e.Name, e)
	case *Assign:
		value, err := ip.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if depth, ok := ip.locals[e]; ok {
			err = ip.env.AssignAt(depth, e.Name.Lexeme, value)
		} else {
			err = ip.globals.Assign(e.Name.Lexeme, value)
		}
		if err != nil {
			return nil, ip.undefined(e.Name)
		}
		return value, nil
	case *Logical:
		left, err := ip.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Operator.Type == Or {
			if left.True() {
				return left, nil
			}
		} else if !left.True() {
			return left, nil
		}
		return ip.evaluate(e.Right)
	case *Unary:
		return ip.evalUnary(e)
	case *Binary:
		return ip.evalBinary(e)
	case *Call:
		return ip.evalCall(e)
	default:
		return nil, fmt.Errorf("%T unsupported node type", expr)
	}
}

func (ip *Interp) lookup(name *Token, expr Expr) (Value, error) {
	if depth, ok := ip.locals[expr]; ok {
		v, err := ip.env.ResolveAt(depth, name.Lexeme)
		if err != nil {
			return nil, ip.undefined(name)
		}
		return v, nil
	}
	v, err := ip.globals.Resolve(name.Lexeme)
	if err != nil {
		return nil, ip.undefined(name)
	}
	return v, nil
}

func (ip *Interp) evalUnary(e *Unary) (Value, error) {
	right, err := ip.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case Minus:
		num, ok := right.(Float)
		if !ok {
			return nil, &RuntimeError{
				Token:   e.Operator,
				Message: "Operand must be a number.",
			}
		}
		return getFloat(-num.value), nil
	case Not:
		return getBool(!right.True()), nil
	default:
		return nil, fmt.Errorf("%s: unsupported unary operator", e.Operator)
	}
}

func (ip *Interp) evalBinary(e *Binary) (Value, error) {
	left, err := ip.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := ip.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case Eq:
		return getBool(equal(left, right)), nil
	case Ne:
		return getBool(!equal(left, right)), nil
	case Plus:
		if a, ok := left.(Float); ok {
			if b, ok := right.(Float); ok {
				return getFloat(a.value + b.value), nil
			}
		}
		if a, ok := left.(Str); ok {
			if b, ok := right.(Str); ok {
				return getStr(a.value + b.value), nil
			}
		}
		return nil, &RuntimeError{
			Token:   e.Operator,
			Message: "Operands must be two numbers or two strings.",
		}
	}
	a, aok := left.(Float)
	b, bok := right.(Float)
	if !aok || !bok {
		return nil, &RuntimeError{
			Token:   e.Operator,
			Message: "Operands must be numbers.",
		}
	}
	switch e.Operator.Type {
	case Minus:
		return getFloat(a.value - b.value), nil
	case Star:
		return getFloat(a.value * b.value), nil
	case Slash:
		return getFloat(a.value / b.value), nil
	case Gt:
		return getBool(a.value > b.value), nil
	case Ge:
		return getBool(a.value >= b.value), nil
	case Lt:
		return getBool(a.value < b.value), nil
	case Le:
		return getBool(a.value <= b.value), nil
	default:
		return nil, fmt.Errorf("%s: unsupported binary operator", e.Operator)
	}
}

// evalCall evaluates callee and arguments left to right, checks that
// the callee is callable and that the argument count matches its arity,
// then dispatches.
func (ip *Interp) evalCall(e *Call) (Value, error) {
	callee, err := ip.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]Value, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		v, err := ip.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	fn, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{
			Token:   e.Paren,
			Message: "Can only call functions and classes.",
		}
	}
	if len(args) != fn.Arity() {
		return nil, &RuntimeError{
			Token:   e.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)),
		}
	}
	return fn.Call(ip, args)
}

func (ip *Interp) undefined(name *Token) error {
	return &RuntimeError{
		Token:   name,
		Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme),
	}
}
