package glox

import "strconv"

// Value is a runtime value: one of the literal scalars or a Callable.
type Value interface {
	True() bool
	String() string
}

type Str struct {
	value string
}

func getStr(str string) Value {
	return Str{value: str}
}

func (s Str) True() bool {
	return true
}

func (s Str) String() string {
	return s.value
}

type Float struct {
	value float64
}

func getFloat(num float64) Value {
	return Float{value: num}
}

func (f Float) True() bool {
	return true
}

func (f Float) String() string {
	return strconv.FormatFloat(f.value, 'f', -1, 64)
}

type Bool struct {
	value bool
}

func getBool(b bool) Value {
	return Bool{value: b}
}

func (b Bool) True() bool {
	return b.value
}

func (b Bool) String() string {
	return strconv.FormatBool(b.value)
}

type Nil struct{}

func getNil() Value {
	return Nil{}
}

func (Nil) True() bool {
	return false
}

func (Nil) String() string {
	return "nil"
}

func literalValue(lit Literal) Value {
	switch lit.Kind {
	case LitString:
		return getStr(lit.Str)
	case LitNumber:
		return getFloat(lit.Num)
	case LitBool:
		return getBool(lit.Bool)
	default:
		return getNil()
	}
}

// equal is full value equality: mismatched kinds are always unequal and
// nothing is coerced. Callables compare by identity.
func equal(left, right Value) bool {
	switch a := left.(type) {
	case Nil:
		_, ok := right.(Nil)
		return ok
	case Bool:
		b, ok := right.(Bool)
		return ok && a.value == b.value
	case Float:
		b, ok := right.(Float)
		return ok && a.value == b.value
	case Str:
		b, ok := right.(Str)
		return ok && a.value == b.value
	default:
		return left == right
	}
}
