package glox

import (
	"errors"
	"time"

	"glox/environ"
)

// Callable is anything a call expression can dispatch to: a
// user-defined function or a native one.
type Callable interface {
	Value
	Arity() int
	Call(ip *Interp, args []Value) (Value, error)
}

// Function pairs a declaration with the environment active where it was
// declared. Invoking it binds parameters in a fresh scope chained to
// that closure, never to the caller's scope.
type Function struct {
	declaration *Func
	closure     *environ.Env[Value]
}

func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

func (f *Function) Call(ip *Interp, args []Value) (Value, error) {
	env := environ.Enclosed(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}
	err := ip.executeBlock(f.declaration.Body, env)
	if err != nil {
		var ret returnSignal
		if errors.As(err, &ret) {
			return ret.value, nil
		}
		return nil, err
	}
	return getNil(), nil
}

func (f *Function) True() bool {
	return true
}

func (f *Function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}

// BuiltinFunc wraps a native Go function as a callable value.
type BuiltinFunc struct {
	Ident string
	Nargs int
	Func  func(args []Value) (Value, error)
}

func NewBuiltinFunc(ident string, nargs int, fn func([]Value) (Value, error)) Callable {
	return BuiltinFunc{
		Ident: ident,
		Nargs: nargs,
		Func:  fn,
	}
}

func (b BuiltinFunc) Arity() int {
	return b.Nargs
}

func (b BuiltinFunc) Call(_ *Interp, args []Value) (Value, error) {
	return b.Func(args)
}

func (b BuiltinFunc) True() bool {
	return true
}

func (b BuiltinFunc) String() string {
	return "<native fn>"
}

func execClock(_ []Value) (Value, error) {
	return getFloat(float64(time.Now().UnixNano()) / 1e9), nil
}
