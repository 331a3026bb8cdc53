package glox

import (
	"fmt"
	"strings"
)

// FormatExpr renders an expression in a lisp-flavoured diagnostic form,
// e.g. (+ 1 (* 2 3)). The rendering is lossy and only for debugging;
// it is not guaranteed to re-parse.
func FormatExpr(expr Expr) string {
	switch e := expr.(type) {
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Call:
		return parenthesize("call", append([]Expr{e.Callee}, e.Arguments...)...)
	case *Grouping:
		return parenthesize("group", e.Inner)
	case *LiteralExpr:
		return e.Value.String()
	case *Logical:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *Variable:
		return e.Name.Lexeme
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// FormatStmt renders a statement in the same diagnostic form.
func FormatStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *Block:
		var str strings.Builder
		str.WriteString("(block")
		for _, inner := range s.Statements {
			str.WriteRune(' ')
			str.WriteString(FormatStmt(inner))
		}
		str.WriteRune(')')
		return str.String()
	case *Expression:
		return parenthesize(";", s.Expr)
	case *Func:
		var str strings.Builder
		str.WriteString("(fun " + s.Name.Lexeme + " (")
		for i, param := range s.Params {
			if i > 0 {
				str.WriteRune(' ')
			}
			str.WriteString(param.Lexeme)
		}
		str.WriteString(")")
		for _, inner := range s.Body {
			str.WriteRune(' ')
			str.WriteString(FormatStmt(inner))
		}
		str.WriteRune(')')
		return str.String()
	case *If:
		if s.Else != nil {
			return "(if " + FormatExpr(s.Condition) + " " + FormatStmt(s.Then) + " " + FormatStmt(s.Else) + ")"
		}
		return "(if " + FormatExpr(s.Condition) + " " + FormatStmt(s.Then) + ")"
	case *Print:
		return parenthesize("print", s.Expr)
	case *Return:
		if s.Value != nil {
			return parenthesize("return", s.Value)
		}
		return "(return)"
	case *Var:
		if s.Initializer != nil {
			return parenthesize("var "+s.Name.Lexeme, s.Initializer)
		}
		return "(var " + s.Name.Lexeme + ")"
	case *While:
		return "(while " + FormatExpr(s.Condition) + " " + FormatStmt(s.Body) + ")"
	default:
		return fmt.Sprintf("%T", stmt)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var str strings.Builder
	str.WriteRune('(')
	str.WriteString(name)
	for _, e := range exprs {
		str.WriteRune(' ')
		str.WriteString(FormatExpr(e))
	}
	str.WriteRune(')')
	return str.String()
}
