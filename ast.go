package glox

// Expr is an expression node. Nodes are pointers and immutable after
// construction: the resolver keys its binding table by node identity,
// so the same *Variable seen by the resolver must reach the evaluator.
type Expr interface {
	expr()
}

// Stmt is a statement node, same ownership rules as Expr.
type Stmt interface {
	stmt()
}

type Assign struct {
	Name  *Token
	Value Expr
}

type Binary struct {
	Left     Expr
	Operator *Token
	Right    Expr
}

type Call struct {
	Callee    Expr
	Paren     *Token
	Arguments []Expr
}

type Grouping struct {
	Inner Expr
}

type LiteralExpr struct {
	Value Literal
}

// Logical is short-circuit and/or. It yields the deciding operand
// itself, not a boolean.
type Logical struct {
	Left     Expr
	Operator *Token
	Right    Expr
}

type Unary struct {
	Operator *Token
	Right    Expr
}

type Variable struct {
	Name *Token
}

func (*Assign) expr()      {}
func (*Binary) expr()      {}
func (*Call) expr()        {}
func (*Grouping) expr()    {}
func (*LiteralExpr) expr() {}
func (*Logical) expr()     {}
func (*Unary) expr()       {}
func (*Variable) expr()    {}

type Block struct {
	Statements []Stmt
}

type Expression struct {
	Expr Expr
}

type Func struct {
	Name   *Token
	Params []*Token
	Body   []Stmt
}

type If struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

type Print struct {
	Expr Expr
}

type Return struct {
	Keyword *Token
	Value   Expr
}

type Var struct {
	Name        *Token
	Initializer Expr
}

type While struct {
	Condition Expr
	Body      Stmt
}

func (*Block) stmt()      {}
func (*Expression) stmt() {}
func (*Func) stmt()       {}
func (*If) stmt()         {}
func (*Print) stmt()      {}
func (*Return) stmt()     {}
func (*Var) stmt()        {}
func (*While) stmt()      {}
