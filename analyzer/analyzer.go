package analyzer

import (
	"fmt"

	"github.com/avscript/avscript/ast"
	"github.com/avscript/avscript/lexer"
	"github.com/avscript/avscript/parser"
)

// Analyzer walks a parsed program once, accumulating diagnostics.
type Analyzer struct {
	root  *SymTable
	diags []Diagnostic
}

// New builds an Analyzer whose root scope is seeded with builtinNames (all
// bound at TAny, since the catalog carries no per-name signature) plus
// extraTypes, a caller-supplied type environment (spec.md §4.6).
func New(builtinNames []string, extraTypes map[string]Type) *Analyzer {
	root := NewSymTable(nil)
	for _, name := range builtinNames {
		root.Declare(name, TAny)
	}
	for name, t := range extraTypes {
		root.Declare(name, t)
	}
	return &Analyzer{root: root}
}

func (a *Analyzer) report(line int, severity Severity, format string, args ...interface{}) {
	a.diags = append(a.diags, Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Severity: severity,
		Source:   "avscript",
	})
}

// CheckSource parses src and analyzes it, converting a parse failure into
// a single error diagnostic instead of aborting (spec.md §4.6's "syntax
// errors from the parser are converted into a single error diagnostic").
func (a *Analyzer) CheckSource(src string) []Diagnostic {
	stmts, err := parser.ParseProgram(src)
	if err != nil {
		line := 0
		if se, ok := err.(*parser.SyntaxError); ok {
			line = se.Token.Line
		} else if le, ok := err.(*lexer.LexError); ok {
			line = le.Line
		}
		a.report(line, SeverityError, "%s", err.Error())
		return a.diags
	}
	return a.Analyze(stmts)
}

// Analyze walks an already-parsed program against the root scope.
func (a *Analyzer) Analyze(stmts []ast.Stmt) []Diagnostic {
	a.walkStmts(stmts, a.root)
	return a.diags
}

func (a *Analyzer) walkStmts(stmts []ast.Stmt, scope *SymTable) {
	for _, s := range stmts {
		a.walkStmt(s, scope)
	}
}

func (a *Analyzer) walkStmt(s ast.Stmt, scope *SymTable) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		a.typeOf(n.Expr, scope)
	case *ast.Let:
		t := a.typeOf(n.Init, scope)
		scope.Declare(n.Name, t)
	case *ast.Fn:
		scope.Declare(n.Name, TAny)
		inner := NewSymTable(scope)
		for _, p := range n.Params {
			inner.Declare(p, TAny)
		}
		a.walkStmts(n.Body, inner)
	case *ast.If:
		a.checkBoolean(n.Cond, scope, "if")
		a.walkStmts(n.Then, NewSymTable(scope))
		for _, ei := range n.Elsifs {
			a.checkBoolean(ei.Cond, scope, "elsif")
			a.walkStmts(ei.Body, NewSymTable(scope))
		}
		if n.HasElse {
			a.walkStmts(n.Else, NewSymTable(scope))
		}
	case *ast.While:
		a.checkBoolean(n.Cond, scope, "while")
		a.walkStmts(n.Body, NewSymTable(scope))
	case *ast.For:
		a.typeOf(n.Iterable, scope)
		inner := NewSymTable(scope)
		if n.HasIndex {
			inner.Declare(n.IndexName, TAny)
		}
		inner.Declare(n.ItemName, TAny)
		a.walkStmts(n.Body, inner)
	case *ast.Return:
		if n.HasExpr {
			a.typeOf(n.Expr, scope)
		}
	case *ast.Break, *ast.Continue:
		// no scope effect
	case *ast.Block:
		a.walkStmts(n.Stmts, NewSymTable(scope))
	case *ast.Try:
		a.walkStmts(n.TryBody, NewSymTable(scope))
		if n.HasCatch {
			catchScope := NewSymTable(scope)
			catchScope.Declare(n.CatchName, TAny)
			a.walkStmts(n.CatchBody, catchScope)
		}
		if n.HasFinally {
			a.walkStmts(n.Finally, NewSymTable(scope))
		}
	case *ast.Throw:
		a.typeOf(n.Expr, scope)
	}
}

func (a *Analyzer) checkBoolean(cond ast.Expr, scope *SymTable, context string) {
	t := a.typeOf(cond, scope)
	if !boolCompatible(t) {
		a.report(cond.Line(), SeverityError, "'%s' condition expects boolean, got %s", context, t)
	}
}

func (a *Analyzer) typeOf(e ast.Expr, scope *SymTable) Type {
	switch n := e.(type) {
	case *ast.Leaf:
		return a.typeOfLeaf(n, scope)
	case *ast.Node:
		return a.typeOfNode(n, scope)
	case *ast.Call:
		return a.typeOfCall(n, scope)
	case *ast.Lambda:
		inner := NewSymTable(scope)
		for _, p := range n.Params {
			inner.Declare(p, TAny)
		}
		a.typeOf(n.Body, inner)
		return TAny
	default:
		return TAny
	}
}

func (a *Analyzer) typeOfLeaf(l *ast.Leaf, scope *SymTable) Type {
	switch l.Tok.Kind {
	case lexer.NUMBER:
		switch l.Tok.Suffix {
		case lexer.BigSuffix:
			return TBigInt
		case lexer.DecSuffix:
			return TDecimal
		}
		for i := 0; i < len(l.Tok.Lexeme); i++ {
			if l.Tok.Lexeme[i] == '.' || l.Tok.Lexeme[i] == 'e' || l.Tok.Lexeme[i] == 'E' {
				return TDouble
			}
		}
		return TLong
	case lexer.STRING:
		return TString
	case lexer.REGEX:
		return TPattern
	case lexer.TRUE, lexer.FALSE:
		return TBoolean
	case lexer.NIL:
		return TNil
	case lexer.IDENT:
		if t, ok := scope.Lookup(l.Tok.Lexeme); ok {
			return t
		}
		a.report(l.Tok.Line, SeverityError, "Undefined variable '%s'", l.Tok.Lexeme)
		return TAny
	default:
		return TAny
	}
}

func (a *Analyzer) typeOfNode(n *ast.Node, scope *SymTable) Type {
	switch len(n.Operands) {
	case 1:
		operand := a.typeOf(n.Operands[0], scope)
		switch n.Op.Kind {
		case lexer.MINUS:
			if numeric(operand) {
				return operand
			}
			return TAny
		case lexer.NOT:
			if !boolCompatible(operand) {
				a.report(n.Line(), SeverityError, "'!' requires a boolean operand, got %s", operand)
			}
			return TBoolean
		case lexer.TILDE:
			return TLong
		default:
			return TAny
		}
	case 2:
		return a.typeOfBinary(n, scope)
	case 3:
		condT := a.typeOf(n.Operands[0], scope)
		if !boolCompatible(condT) {
			a.report(n.Line(), SeverityError, "ternary condition must be boolean, got %s", condT)
		}
		thenT := a.typeOf(n.Operands[1], scope)
		elseT := a.typeOf(n.Operands[2], scope)
		if thenT == elseT {
			return thenT
		}
		return TAny
	default:
		return TAny
	}
}

func (a *Analyzer) typeOfBinary(n *ast.Node, scope *SymTable) Type {
	switch n.Op.Kind {
	case lexer.ASSIGN:
		rhs := a.typeOf(n.Operands[1], scope)
		if leaf, ok := n.Operands[0].(*ast.Leaf); ok && leaf.Tok.Kind == lexer.IDENT {
			scope.Assign(leaf.Tok.Lexeme, rhs)
		} else {
			a.typeOf(n.Operands[0], scope)
		}
		return rhs
	case lexer.DOT:
		if name, ok := foldDotted(n); ok {
			if t, ok := scope.Lookup(name); ok {
				return t
			}
		}
		a.typeOf(n.Operands[0], scope)
		return TAny
	case lexer.LBRACKET:
		a.typeOf(n.Operands[0], scope)
		a.typeOf(n.Operands[1], scope)
		return TAny
	case lexer.AND, lexer.OR:
		lt := a.typeOf(n.Operands[0], scope)
		rt := a.typeOf(n.Operands[1], scope)
		if !boolCompatible(lt) {
			a.report(n.Line(), SeverityError, "Left operand of '%s' must be boolean, got %s", n.Op.Kind, lt)
		}
		if !boolCompatible(rt) {
			a.report(n.Line(), SeverityError, "Right operand of '%s' must be boolean, got %s", n.Op.Kind, rt)
		}
		return TBoolean
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.LE, lexer.GT, lexer.GE, lexer.MATCH:
		a.typeOf(n.Operands[0], scope)
		a.typeOf(n.Operands[1], scope)
		return TBoolean
	case lexer.PLUS:
		lt := a.typeOf(n.Operands[0], scope)
		rt := a.typeOf(n.Operands[1], scope)
		if lt == TString || rt == TString {
			return TString
		}
		if numeric(lt) && numeric(rt) {
			return promote(lt, rt)
		}
		return TAny
	case lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PCT, lexer.POW:
		lt := a.typeOf(n.Operands[0], scope)
		rt := a.typeOf(n.Operands[1], scope)
		if numeric(lt) && numeric(rt) {
			return promote(lt, rt)
		}
		return TAny
	case lexer.AMP, lexer.PIPE, lexer.CARET, lexer.SHL, lexer.SHR, lexer.USHR:
		a.typeOf(n.Operands[0], scope)
		a.typeOf(n.Operands[1], scope)
		return TLong
	default:
		a.typeOf(n.Operands[0], scope)
		a.typeOf(n.Operands[1], scope)
		return TAny
	}
}

func (a *Analyzer) typeOfCall(c *ast.Call, scope *SymTable) Type {
	if name, ok := foldDotted(c.Callee); ok {
		if _, ok := scope.Lookup(name); !ok {
			a.report(c.Line(), SeverityError, "Undefined variable '%s'", name)
		}
	} else {
		a.typeOf(c.Callee, scope)
	}
	for _, arg := range c.Args {
		a.typeOf(arg, scope)
	}
	return TAny
}

// foldDotted flattens a pure identifier `.`-chain, the analyzer's
// counterpart to the interpreter's flattened dotted-name call rule
// (spec.md §4.6 "Object access").
func foldDotted(e ast.Expr) (string, bool) {
	switch n := e.(type) {
	case *ast.Leaf:
		if n.Tok.Kind == lexer.IDENT {
			return n.Tok.Lexeme, true
		}
		return "", false
	case *ast.Node:
		if n.Op.Kind != lexer.DOT || len(n.Operands) != 2 {
			return "", false
		}
		left, ok := foldDotted(n.Operands[0])
		if !ok {
			return "", false
		}
		right, ok := n.Operands[1].(*ast.Leaf)
		if !ok || right.Tok.Kind != lexer.IDENT {
			return "", false
		}
		return left + "." + right.Tok.Lexeme, true
	default:
		return "", false
	}
}
