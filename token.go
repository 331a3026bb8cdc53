package glox

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/segmentio/fasthash/fnv1a"
)

const (
	EOF rune = -(iota + 1)
	Lparen
	Rparen
	Lbrace
	Rbrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star
	Not
	Ne
	AssignOp
	Eq
	Gt
	Ge
	Lt
	Le
	Ident
	String
	Number
	Boolean
	Null
	And
	Or
	Keyword
	Invalid
)

var keywords = []string{
	"and",
	"class",
	"else",
	"false",
	"for",
	"fun",
	"if",
	"nil",
	"or",
	"print",
	"return",
	"super",
	"this",
	"true",
	"var",
	"while",
}

func isKeyword(str string) bool {
	i := sort.SearchStrings(keywords, str)
	return i < len(keywords) && keywords[i] == str
}

// LitKind tags the payload carried by a Literal.
type LitKind int

const (
	LitNone LitKind = iota
	LitIdent
	LitString
	LitNumber
	LitBool
	LitNil
)

// Literal is the tagged value attached to a token: identifier text, a
// string, a 64-bit float, a boolean or nil.
type Literal struct {
	Kind LitKind
	Str  string
	Num  float64
	Bool bool
}

func identLit(str string) Literal {
	return Literal{Kind: LitIdent, Str: str}
}

func strLit(str string) Literal {
	return Literal{Kind: LitString, Str: str}
}

func numLit(num float64) Literal {
	return Literal{Kind: LitNumber, Num: num}
}

func boolLit(b bool) Literal {
	return Literal{Kind: LitBool, Bool: b}
}

func nilLit() Literal {
	return Literal{Kind: LitNil}
}

func (l Literal) Equal(other Literal) bool {
	if l.Kind != other.Kind {
		return false
	}
	switch l.Kind {
	case LitIdent, LitString:
		return l.Str == other.Str
	case LitNumber:
		return math.Float64bits(l.Num) == math.Float64bits(other.Num)
	case LitBool:
		return l.Bool == other.Bool
	default:
		return true
	}
}

// Hash folds the literal into a 64-bit fnv1a digest. Floats contribute
// their raw bit pattern split into sign, exponent and mantissa, so NaN
// and negative zero hash the same way every time.
func (l Literal) Hash() uint64 {
	h := fnv1a.Init64
	h = fnv1a.AddUint64(h, uint64(l.Kind))
	switch l.Kind {
	case LitIdent, LitString:
		h = fnv1a.AddString64(h, l.Str)
	case LitNumber:
		bits := math.Float64bits(l.Num)
		sign := bits >> 63
		exponent := (bits >> 52) & 0x7ff
		mantissa := bits & ((1 << 52) - 1)
		h = fnv1a.AddUint64(h, sign)
		h = fnv1a.AddUint64(h, exponent)
		h = fnv1a.AddUint64(h, mantissa)
	case LitBool:
		var b uint64
		if l.Bool {
			b = 1
		}
		h = fnv1a.AddUint64(h, b)
	}
	return h
}

func (l Literal) String() string {
	switch l.Kind {
	case LitIdent, LitString:
		return l.Str
	case LitNumber:
		return strconv.FormatFloat(l.Num, 'f', -1, 64)
	case LitBool:
		return strconv.FormatBool(l.Bool)
	case LitNil:
		return "nil"
	default:
		return ""
	}
}

// Token is immutable once produced by the scanner. AST nodes share the
// same *Token so error reporting never copies one.
type Token struct {
	Type    rune
	Lexeme  string
	Literal Literal
	Line    int
}

func (t *Token) String() string {
	var prefix string
	switch t.Type {
	case EOF:
		return "<eof>"
	case Lparen:
		return "<lparen>"
	case Rparen:
		return "<rparen>"
	case Lbrace:
		return "<lbrace>"
	case Rbrace:
		return "<rbrace>"
	case Comma:
		return "<comma>"
	case Dot:
		return "<dot>"
	case Minus:
		return "<sub>"
	case Plus:
		return "<add>"
	case Semicolon:
		return "<semicolon>"
	case Slash:
		return "<div>"
	case Star:
		return "<mul>"
	case Not:
		return "<not>"
	case Ne:
		return "<ne>"
	case AssignOp:
		return "<assign>"
	case Eq:
		return "<eq>"
	case Gt:
		return "<gt>"
	case Ge:
		return "<ge>"
	case Lt:
		return "<lt>"
	case Le:
		return "<le>"
	case And:
		return "<and>"
	case Or:
		return "<or>"
	case Null:
		return "<nil>"
	case Ident:
		prefix = "identifier"
	case String:
		prefix = "string"
	case Number:
		prefix = "number"
	case Boolean:
		prefix = "boolean"
	case Keyword:
		prefix = "keyword"
	case Invalid:
		prefix = "invalid"
	default:
		prefix = "unknown"
	}
	return fmt.Sprintf("%s(%s)", prefix, t.Lexeme)
}
