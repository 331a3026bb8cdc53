package glox

// maxArgs caps argument and parameter lists. Exceeding it is reported
// but does not abort the parse.
const maxArgs = 255

// Parse consumes the token stream and returns the statement list plus
// every syntax error found. A statement-level failure discards tokens
// up to the next statement boundary and parsing resumes, so one mistake
// does not cascade. Any error at all means the statements must not be
// resolved or executed.
func Parse(tokens []*Token) ([]Stmt, []error) {
	p := newParser(tokens)
	var list []Stmt
	for !p.done() {
		if s := p.parseDeclaration(); s != nil {
			list = append(list, s)
		}
	}
	return list, p.errs
}

type parser struct {
	tokens []*Token
	pos    int
	errs   []error

	prefix map[rune]func() (Expr, error)
	infix  map[rune]func(Expr) (Expr, error)
	stmts  map[string]func() (Stmt, error)
}

func newParser(tokens []*Token) *parser {
	p := parser{
		tokens: tokens,
		prefix: make(map[rune]func() (Expr, error)),
		infix:  make(map[rune]func(Expr) (Expr, error)),
		stmts:  make(map[string]func() (Stmt, error)),
	}
	p.registerInfix(AssignOp, p.parseAssign)
	p.registerInfix(Or, p.parseLogical)
	p.registerInfix(And, p.parseLogical)
	p.registerInfix(Eq, p.parseBinary)
	p.registerInfix(Ne, p.parseBinary)
	p.registerInfix(Gt, p.parseBinary)
	p.registerInfix(Ge, p.parseBinary)
	p.registerInfix(Lt, p.parseBinary)
	p.registerInfix(Le, p.parseBinary)
	p.registerInfix(Plus, p.parseBinary)
	p.registerInfix(Minus, p.parseBinary)
	p.registerInfix(Star, p.parseBinary)
	p.registerInfix(Slash, p.parseBinary)
	p.registerInfix(Lparen, p.parseCall)

	p.registerPrefix(Number, p.parseLiteral)
	p.registerPrefix(String, p.parseLiteral)
	p.registerPrefix(Boolean, p.parseLiteral)
	p.registerPrefix(Null, p.parseLiteral)
	p.registerPrefix(Ident, p.parseVariable)
	p.registerPrefix(Lparen, p.parseGroup)
	p.registerPrefix(Not, p.parseUnary)
	p.registerPrefix(Minus, p.parseUnary)

	p.registerStmt("if", p.parseIf)
	p.registerStmt("for", p.parseFor)
	p.registerStmt("while", p.parseWhile)
	p.registerStmt("print", p.parsePrint)
	p.registerStmt("return", p.parseReturn)
	return &p
}

func (p *parser) parseDeclaration() Stmt {
	var (
		s   Stmt
		err error
	)
	switch {
	case p.isKeyword("fun"):
		s, err = p.parseFunction()
	case p.isKeyword("var"):
		s, err = p.parseVar()
	default:
		s, err = p.parseStatement()
	}
	if err != nil {
		p.errs = append(p.errs, err)
		p.synchronize()
		return nil
	}
	return s
}

func (p *parser) parseStatement() (Stmt, error) {
	if p.is(Keyword) {
		if parse, ok := p.stmts[p.curr().Lexeme]; ok {
			return parse()
		}
	}
	if p.is(Lbrace) {
		list, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &Block{Statements: list}, nil
	}
	return p.parseExprStmt()
}

func (p *parser) parseVar() (Stmt, error) {
	p.next()
	name, err := p.expect(Ident, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	decl := Var{
		Name: name,
	}
	if p.is(AssignOp) {
		p.next()
		decl.Initializer, err = p.parseExpression(powLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &decl, nil
}

func (p *parser) parseFunction() (Stmt, error) {
	p.next()
	name, err := p.expect(Ident, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Lparen, "Expect '(' after function name."); err != nil {
		return nil, err
	}
	fn := Func{
		Name: name,
	}
	// a comma commits to another parameter, so fun f(a,) is a syntax
	// error
	if !p.is(Rparen) {
		for {
			if len(fn.Params) >= maxArgs {
				p.report(p.curr(), "Can't have more than 255 parameters.")
			}
			param, err := p.expect(Ident, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, param)
			if !p.is(Comma) {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(Rparen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if !p.is(Lbrace) {
		return nil, p.failure(p.curr(), "Expect '{' before function body.")
	}
	fn.Body, err = p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &fn, nil
}

func (p *parser) parseBlock() ([]Stmt, error) {
	if _, err := p.expect(Lbrace, "Expect '{' before block."); err != nil {
		return nil, err
	}
	var list []Stmt
	for !p.done() && !p.is(Rbrace) {
		if s := p.parseDeclaration(); s != nil {
			list = append(list, s)
		}
	}
	if _, err := p.expect(Rbrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *parser) parseIf() (Stmt, error) {
	p.next()
	if _, err := p.expect(Lparen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	var (
		stmt If
		err  error
	)
	stmt.Condition, err = p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Rparen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	stmt.Then, err = p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.isKeyword("else") {
		p.next()
		stmt.Else, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &stmt, nil
}

func (p *parser) parseWhile() (Stmt, error) {
	p.next()
	if _, err := p.expect(Lparen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	var (
		loop While
		err  error
	)
	loop.Condition, err = p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Rparen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	loop.Body, err = p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &loop, nil
}

// parseFor desugars to a while wrapped in a block: the initializer runs
// once before the loop, the increment is appended to the loop body.
// There is no for-loop node at runtime.
func (p *parser) parseFor() (Stmt, error) {
	p.next()
	if _, err := p.expect(Lparen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}
	var (
		init Stmt
		err  error
	)
	switch {
	case p.is(Semicolon):
		p.next()
	case p.isKeyword("var"):
		init, err = p.parseVar()
	default:
		init, err = p.parseExprStmt()
	}
	if err != nil {
		return nil, err
	}
	var cond Expr
	if !p.is(Semicolon) {
		cond, err = p.parseExpression(powLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}
	var incr Expr
	if !p.is(Rparen) {
		incr, err = p.parseExpression(powLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(Rparen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if incr != nil {
		body = &Block{
			Statements: []Stmt{body, &Expression{Expr: incr}},
		}
	}
	if cond == nil {
		cond = &LiteralExpr{Value: boolLit(true)}
	}
	var loop Stmt = &While{
		Condition: cond,
		Body:      body,
	}
	if init != nil {
		loop = &Block{
			Statements: []Stmt{init, loop},
		}
	}
	return loop, nil
}

func (p *parser) parsePrint() (Stmt, error) {
	p.next()
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &Print{Expr: expr}, nil
}

func (p *parser) parseReturn() (Stmt, error) {
	keyword := p.curr()
	p.next()
	ret := Return{
		Keyword: keyword,
	}
	if !p.is(Semicolon) {
		expr, err := p.parseExpression(powLowest)
		if err != nil {
			return nil, err
		}
		ret.Value = expr
	}
	if _, err := p.expect(Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ret, nil
}

func (p *parser) parseExprStmt() (Stmt, error) {
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &Expression{Expr: expr}, nil
}

func (p *parser) parseExpression(pow int) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for !p.done() && pow < bindings[p.curr().Type] {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parseAssign is right-associative. A left side that is not a plain
// variable is reported but parsing of the statement continues.
func (p *parser) parseAssign(left Expr) (Expr, error) {
	equals := p.curr()
	p.next()
	value, err := p.parseExpression(powAssign - 1)
	if err != nil {
		return nil, err
	}
	v, ok := left.(*Variable)
	if !ok {
		p.report(equals, "Invalid assignment target.")
		return value, nil
	}
	return &Assign{
		Name:  v.Name,
		Value: value,
	}, nil
}

func (p *parser) parseLogical(left Expr) (Expr, error) {
	expr := Logical{
		Operator: p.curr(),
		Left:     left,
	}
	p.next()
	right, err := p.parseExpression(bindings[expr.Operator.Type])
	if err != nil {
		return nil, err
	}
	expr.Right = right
	return &expr, nil
}

func (p *parser) parseBinary(left Expr) (Expr, error) {
	expr := Binary{
		Operator: p.curr(),
		Left:     left,
	}
	p.next()
	right, err := p.parseExpression(bindings[expr.Operator.Type])
	if err != nil {
		return nil, err
	}
	expr.Right = right
	return &expr, nil
}

func (p *parser) parseUnary() (Expr, error) {
	expr := Unary{
		Operator: p.curr(),
	}
	p.next()
	right, err := p.parseExpression(powUnary)
	if err != nil {
		return nil, err
	}
	expr.Right = right
	return &expr, nil
}

func (p *parser) parseCall(left Expr) (Expr, error) {
	p.next()
	call := Call{
		Callee: left,
	}
	// same commitment rule as parameters: a comma demands an argument
	if !p.is(Rparen) {
		for {
			if len(call.Arguments) >= maxArgs {
				p.report(p.curr(), "Can't have more than 255 arguments.")
			}
			arg, err := p.parseExpression(powLowest)
			if err != nil {
				return nil, err
			}
			call.Arguments = append(call.Arguments, arg)
			if !p.is(Comma) {
				break
			}
			p.next()
		}
	}
	paren, err := p.expect(Rparen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	call.Paren = paren
	return &call, nil
}

func (p *parser) parseLiteral() (Expr, error) {
	defer p.next()
	return &LiteralExpr{Value: p.curr().Literal}, nil
}

func (p *parser) parseVariable() (Expr, error) {
	defer p.next()
	return &Variable{Name: p.curr()}, nil
}

func (p *parser) parseGroup() (Expr, error) {
	p.next()
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Rparen, "Expect ')' after expression."); err != nil {
		return nil, err
	}
	return &Grouping{Inner: expr}, nil
}

func (p *parser) parsePrefix() (Expr, error) {
	parse, ok := p.prefix[p.curr().Type]
	if !ok {
		return nil, p.failure(p.curr(), "Expect expression.")
	}
	return parse()
}

func (p *parser) parseInfix(left Expr) (Expr, error) {
	parse, ok := p.infix[p.curr().Type]
	if !ok {
		return nil, p.failure(p.curr(), "Expect expression.")
	}
	return parse(left)
}

// synchronize discards tokens until a statement boundary so one syntax
// error does not drown the rest of the file in spurious ones.
func (p *parser) synchronize() {
	for !p.done() {
		if p.is(Semicolon) {
			p.next()
			return
		}
		if p.is(Keyword) {
			switch p.curr().Lexeme {
			case "class", "fun", "var", "for", "if", "while", "print", "return":
				return
			}
		}
		p.next()
	}
}

func (p *parser) registerPrefix(kind rune, parse func() (Expr, error)) {
	p.prefix[kind] = parse
}

func (p *parser) registerInfix(kind rune, parse func(Expr) (Expr, error)) {
	p.infix[kind] = parse
}

func (p *parser) registerStmt(kw string, parse func() (Stmt, error)) {
	p.stmts[kw] = parse
}

func (p *parser) expect(kind rune, msg string) (*Token, error) {
	if !p.is(kind) {
		return nil, p.failure(p.curr(), msg)
	}
	tok := p.curr()
	p.next()
	return tok, nil
}

func (p *parser) report(tok *Token, msg string) {
	p.errs = append(p.errs, &ParseError{Token: tok, Message: msg})
}

func (p *parser) failure(tok *Token, msg string) error {
	return &ParseError{Token: tok, Message: msg}
}

func (p *parser) curr() *Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) is(kind rune) bool {
	return p.curr().Type == kind
}

func (p *parser) isKeyword(kw string) bool {
	return p.is(Keyword) && p.curr().Lexeme == kw
}

func (p *parser) done() bool {
	return p.is(EOF)
}

func (p *parser) next() {
	if !p.done() {
		p.pos++
	}
}

const (
	powLowest int = iota
	powAssign
	powOr
	powAnd
	powEqual
	powCompare
	powAdd
	powMul
	powUnary
	powCall
)

var bindings = map[rune]int{
	AssignOp: powAssign,
	Or:       powOr,
	And:      powAnd,
	Eq:       powEqual,
	Ne:       powEqual,
	Gt:       powCompare,
	Ge:       powCompare,
	Lt:       powCompare,
	Le:       powCompare,
	Plus:     powAdd,
	Minus:    powAdd,
	Star:     powMul,
	Slash:    powMul,
	Lparen:   powCall,
}
