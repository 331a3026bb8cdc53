package glox

import "fmt"

// ScanError is a lexical failure. The scanner stops at the first one.
type ScanError struct {
	Line    int
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// ParseError is a syntax failure tied to the token where it was found.
type ParseError struct {
	Token   *Token
	Message string
}

func (e *ParseError) Error() string {
	return errorAt(e.Token, e.Message)
}

// ResolveError is a static-scope violation found before execution.
type ResolveError struct {
	Token   *Token
	Message string
}

func (e *ResolveError) Error() string {
	return errorAt(e.Token, e.Message)
}

// RuntimeError aborts the whole run; there is no catch construct.
type RuntimeError struct {
	Token   *Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func errorAt(tok *Token, msg string) string {
	if tok.Type == EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", tok.Line, msg)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", tok.Line, tok.Lexeme, msg)
}

// returnSignal rides the error channel from a return statement up to
// the function call boundary, where it is turned back into a value. It
// must never be seen above the outermost call.
type returnSignal struct {
	value Value
}

func (returnSignal) Error() string {
	return "return"
}
