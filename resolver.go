package glox

type funcKind int

const (
	funcNone funcKind = iota
	funcFunction
)

// Resolve walks the statement list before execution and computes, for
// every local variable reference, the number of scopes between its use
// and its declaration. The table is keyed by node identity: the same
// name declared in several nested scopes resolves independently per
// reference. Globals get no entry; the interpreter falls back to a
// lookup by name in the global environment.
//
// The outermost scope stands in for the global environment: it feeds
// the read-in-own-initializer check but never produces a distance, and
// redeclaring a name in it stays legal.
func Resolve(stmts []Stmt) (map[Expr]int, error) {
	r := resolver{
		locals: make(map[Expr]int),
	}
	r.beginScope()
	defer r.endScope()
	if err := r.resolveStmts(stmts); err != nil {
		return nil, err
	}
	return r.locals, nil
}

type resolver struct {
	scopes []map[string]bool
	locals map[Expr]int
	fn     funcKind
}

func (r *resolver) resolveStmts(stmts []Stmt) error {
	for _, s := range stmts {
		if err := r.resolveStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveStmt(stmt Stmt) error {
	switch s := stmt.(type) {
	case *Block:
		r.beginScope()
		defer r.endScope()
		return r.resolveStmts(s.Statements)
	case *Expression:
		return r.resolveExpr(s.Expr)
	case *Func:
		if err := r.declare(s.Name); err != nil {
			return err
		}
		r.define(s.Name)
		return r.resolveFunction(s, funcFunction)
	case *If:
		if err := r.resolveExpr(s.Condition); err != nil {
			return err
		}
		if err := r.resolveStmt(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return r.resolveStmt(s.Else)
		}
		return nil
	case *Print:
		return r.resolveExpr(s.Expr)
	case *Return:
		if r.fn == funcNone {
			return &ResolveError{
				Token:   s.Keyword,
				Message: "Can't return from top-level code.",
			}
		}
		if s.Value != nil {
			return r.resolveExpr(s.Value)
		}
		return nil
	case *Var:
		if err := r.declare(s.Name); err != nil {
			return err
		}
		if s.Initializer != nil {
			if err := r.resolveExpr(s.Initializer); err != nil {
				return err
			}
		}
		r.define(s.Name)
		return nil
	case *While:
		if err := r.resolveExpr(s.Condition); err != nil {
			return err
		}
		return r.resolveStmt(s.Body)
	default:
		return nil
	}
}

func (r *resolver) resolveExpr(expr Expr) error {
	switch e := expr.(type) {
	case *Assign:
		if err := r.resolveExpr(e.Value); err != nil {
			return err
		}
		r.resolveLocal(e, e.Name)
		return nil
	case *Binary:
		if err := r.resolveExpr(e.Left); err != nil {
			return err
		}
		return r.resolveExpr(e.Right)
	case *Call:
		if err := r.resolveExpr(e.Callee); err != nil {
			return err
		}
		for _, a := range e.Arguments {
			if err := r.resolveExpr(a); err != nil {
				return err
			}
		}
		return nil
	case *Grouping:
		return r.resolveExpr(e.Inner)
	case *Logical:
		if err := r.resolveExpr(e.Left); err != nil {
			return err
		}
		return r.resolveExpr(e.Right)
	case *Unary:
		return r.resolveExpr(e.Right)
	case *Variable:
		ready, declared := r.innermost()[e.Name.Lexeme]
		if declared && !ready {
			// The reference sits inside its own initializer. When an
			// enclosing scope already holds the name, shadowing reads
			// the outer value; only a name with no outer binding is
			// the self-reference error.
			if r.bindOuter(e, e.Name) {
				return nil
			}
			return &ResolveError{
				Token:   e.Name,
				Message: "Can't read local variable in its own initializer.",
			}
		}
		r.resolveLocal(e, e.Name)
		return nil
	default:
		return nil
	}
}

// resolveFunction pushes a scope for the parameters and body. The
// function-kind marker is saved and restored so nested functions each
// see themselves as inside a function for return checking.
func (r *resolver) resolveFunction(fn *Func, kind funcKind) error {
	enclosing := r.fn
	r.fn = kind
	defer func() {
		r.fn = enclosing
	}()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		if err := r.declare(param); err != nil {
			return err
		}
		r.define(param)
	}
	return r.resolveStmts(fn.Body)
}

// bindOuter resolves a shadowing initializer reference against the
// scopes enclosing the innermost one.
func (r *resolver) bindOuter(expr Expr, name *Token) bool {
	for at := len(r.scopes) - 2; at >= 0; at-- {
		if ready, ok := r.scopes[at][name.Lexeme]; ok && ready {
			if at > 0 {
				r.locals[expr] = len(r.scopes) - 1 - at
			}
			return true
		}
	}
	return false
}

func (r *resolver) resolveLocal(expr Expr, name *Token) {
	for depth := 0; depth < len(r.scopes); depth++ {
		at := len(r.scopes) - 1 - depth
		if _, ok := r.scopes[at][name.Lexeme]; ok {
			if at > 0 {
				r.locals[expr] = depth
			}
			return
		}
	}
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) innermost() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

// declare marks a name present but not ready in the innermost scope, so
// a reference to it from its own initializer can be caught.
func (r *resolver) declare(name *Token) error {
	scope := r.innermost()
	if _, ok := scope[name.Lexeme]; ok {
		if len(r.scopes) > 1 {
			return &ResolveError{
				Token:   name,
				Message: "Already a variable with this name in this scope.",
			}
		}
		// Redeclaring a global is legal and the old binding stays
		// readable from the new initializer.
		return nil
	}
	scope[name.Lexeme] = false
	return nil
}

func (r *resolver) define(name *Token) {
	r.innermost()[name.Lexeme] = true
}
