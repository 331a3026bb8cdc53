package glox

import (
	"bytes"
	"io"
	"strconv"
	"unicode/utf8"
)

// Scan consumes the whole input and returns the token stream terminated
// by an EOF token. Scanning is fail-fast: the first illegal character or
// unterminated string aborts with a ScanError.
func Scan(r io.Reader) ([]*Token, error) {
	s := newScanner(r)
	var list []*Token
	for {
		tok := s.scan()
		if tok.Type == Invalid {
			return nil, &ScanError{
				Line:    tok.Line,
				Message: s.reason,
			}
		}
		list = append(list, tok)
		if tok.Type == EOF {
			return list, nil
		}
	}
}

type cursor struct {
	char rune
	curr int
	next int
	line int
}

type scanner struct {
	input []byte
	cursor

	str    bytes.Buffer
	reason string
}

func newScanner(r io.Reader) *scanner {
	buf, _ := io.ReadAll(r)
	buf, _ = bytes.CutPrefix(buf, []byte{0xef, 0xbb, 0xbf})
	s := scanner{
		input: buf,
	}
	s.cursor.line = 1
	s.read()
	return &s
}

func (s *scanner) scan() *Token {
	defer s.reset()

	s.skip(isBlank)
	for isComment(s.char, s.peek()) {
		s.skip(func(r rune) bool { return !isNL(r) })
		s.skip(isBlank)
	}

	var tok Token
	tok.Line = s.cursor.line
	if s.done() {
		tok.Type = EOF
		return &tok
	}

	switch {
	case isQuote(s.char):
		start := s.curr
		s.scanString(&tok)
		if tok.Type == String {
			tok.Lexeme = string(s.input[start:s.curr])
		}
	case isDigit(s.char):
		s.scanNumber(&tok)
	case isLetter(s.char):
		s.scanIdent(&tok)
	default:
		s.scanPunct(&tok)
	}
	return &tok
}

func (s *scanner) scanString(tok *Token) {
	s.read()
	for !s.done() && !isQuote(s.char) {
		if s.char == nl {
			s.line++
		}
		s.write()
		s.read()
	}
	if s.done() {
		tok.Type = Invalid
		tok.Line = s.line
		s.reason = "Unterminated string."
		return
	}
	s.read()
	tok.Type = String
	tok.Literal = strLit(s.literal())
}

func (s *scanner) scanNumber(tok *Token) {
	for !s.done() && isDigit(s.char) {
		s.write()
		s.read()
	}
	if s.char == dot && isDigit(s.peek()) {
		s.write()
		s.read()
		for !s.done() && isDigit(s.char) {
			s.write()
			s.read()
		}
	}
	tok.Type = Number
	tok.Lexeme = s.literal()
	num, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		tok.Type = Invalid
		s.reason = "Invalid number."
		return
	}
	tok.Literal = numLit(num)
}

func (s *scanner) scanIdent(tok *Token) {
	for !s.done() && isAlpha(s.char) {
		s.write()
		s.read()
	}
	tok.Lexeme = s.literal()
	switch {
	case tok.Lexeme == "true" || tok.Lexeme == "false":
		tok.Type = Boolean
		tok.Literal = boolLit(tok.Lexeme == "true")
	case tok.Lexeme == "nil":
		tok.Type = Null
		tok.Literal = nilLit()
	case tok.Lexeme == "and":
		tok.Type = And
	case tok.Lexeme == "or":
		tok.Type = Or
	case isKeyword(tok.Lexeme):
		tok.Type = Keyword
	default:
		tok.Type = Ident
		tok.Literal = identLit(tok.Lexeme)
	}
}

func (s *scanner) scanPunct(tok *Token) {
	start := s.curr
	switch s.char {
	case lparen:
		tok.Type = Lparen
	case rparen:
		tok.Type = Rparen
	case lbrace:
		tok.Type = Lbrace
	case rbrace:
		tok.Type = Rbrace
	case comma:
		tok.Type = Comma
	case dot:
		tok.Type = Dot
	case minus:
		tok.Type = Minus
	case plus:
		tok.Type = Plus
	case semicolon:
		tok.Type = Semicolon
	case slash:
		tok.Type = Slash
	case star:
		tok.Type = Star
	case bang:
		tok.Type = Not
		if s.peek() == eqsign {
			s.read()
			tok.Type = Ne
		}
	case eqsign:
		tok.Type = AssignOp
		if s.peek() == eqsign {
			s.read()
			tok.Type = Eq
		}
	case langle:
		tok.Type = Lt
		if s.peek() == eqsign {
			s.read()
			tok.Type = Le
		}
	case rangle:
		tok.Type = Gt
		if s.peek() == eqsign {
			s.read()
			tok.Type = Ge
		}
	default:
		tok.Type = Invalid
		s.reason = "Unexpected character."
	}
	s.read()
	end := s.curr
	if end > len(s.input) {
		end = len(s.input)
	}
	tok.Lexeme = string(s.input[start:end])
}

const eofChar rune = -1

func (s *scanner) done() bool {
	return s.char == eofChar
}

// read advances one rune. A byte that is not valid UTF-8 (DecodeRune
// yields RuneError with width 1) travels as an ordinary rune so the
// punctuation scanner rejects it at its own position instead of the
// rest of the input being dropped.
func (s *scanner) read() {
	if s.next >= len(s.input) {
		s.char = eofChar
		s.curr = len(s.input)
		return
	}
	r, n := utf8.DecodeRune(s.input[s.next:])
	s.char, s.curr, s.next = r, s.next, s.next+n
}

func (s *scanner) peek() rune {
	if s.next >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(s.input[s.next:])
	return r
}

func (s *scanner) reset() {
	s.str.Reset()
}

func (s *scanner) write() {
	s.str.WriteRune(s.char)
}

func (s *scanner) literal() string {
	return s.str.String()
}

// skip discards runes while accept holds. Only '\n' bumps the line
// counter, so a CRLF pair counts as one newline.
func (s *scanner) skip(accept func(rune) bool) {
	for !s.done() && accept(s.char) {
		if s.char == nl {
			s.line++
		}
		s.read()
	}
}

const (
	lparen     = '('
	rparen     = ')'
	lbrace     = '{'
	rbrace     = '}'
	langle     = '<'
	rangle     = '>'
	space      = ' '
	tab        = '\t'
	nl         = '\n'
	cr         = '\r'
	dquote     = '"'
	underscore = '_'
	dot        = '.'
	plus       = '+'
	minus      = '-'
	star       = '*'
	slash      = '/'
	bang       = '!'
	eqsign     = '='
	comma      = ','
	semicolon  = ';'
)

func isComment(r, k rune) bool {
	return r == slash && r == k
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == underscore
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return isLetter(r) || isDigit(r)
}

func isSpace(r rune) bool {
	return r == space || r == tab
}

func isQuote(r rune) bool {
	return r == dquote
}

func isNL(r rune) bool {
	return r == nl || r == cr
}

func isBlank(r rune) bool {
	return isSpace(r) || isNL(r)
}
