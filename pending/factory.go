package pending

import (
	"github.com/avscript/avscript/ast"
	"github.com/avscript/avscript/lexer"
)

// Build walks e and produces its pending-execution tree: &&/||/!/?:
// subtrees become structural combinators, everything else becomes a
// ValueExec whose free identifiers are computed by freeIdentifiers.
// builtins is the host's built-in identifier set (spec.md §4.5's
// "identifiers present in the host runtime's built-in identifier set are
// excluded"), typically builtins.Catalog.Names().
func Build(e ast.Expr, builtins []string, rt Runtime) Exec {
	builtinSet := make(map[string]bool, len(builtins))
	for _, b := range builtins {
		builtinSet[b] = true
	}
	return build(e, builtinSet, rt)
}

func build(e ast.Expr, builtinSet map[string]bool, rt Runtime) Exec {
	if n, ok := e.(*ast.Node); ok {
		switch {
		case n.Op.Kind == lexer.AND && len(n.Operands) == 2:
			return &AndExec{l: build(n.Operands[0], builtinSet, rt), r: build(n.Operands[1], builtinSet, rt)}
		case n.Op.Kind == lexer.OR && len(n.Operands) == 2:
			return &OrExec{l: build(n.Operands[0], builtinSet, rt), r: build(n.Operands[1], builtinSet, rt)}
		case n.Op.Kind == lexer.NOT && len(n.Operands) == 1:
			return &NotExec{child: build(n.Operands[0], builtinSet, rt)}
		case n.Op.Kind == lexer.QUESTION && len(n.Operands) == 3:
			return &CondExec{
				cond: build(n.Operands[0], builtinSet, rt),
				then: build(n.Operands[1], builtinSet, rt),
				alt:  build(n.Operands[2], builtinSet, rt),
			}
		}
	}
	free := make(map[string]bool)
	freeIdentifiers(e, make(map[string]bool), builtinSet, free)
	return newValueExec(ast.Print(e), free, rt)
}

// freeIdentifiers performs the depth-first free-identifier extraction
// spec.md §4.5 describes: a pure identifier `.`-chain contributes only its
// flattened dotted path as one name; lambda parameters shadow free
// variables inside their body; bound tracks names shadowed by an enclosing
// lambda, builtinSet excludes catalog names.
func freeIdentifiers(e ast.Expr, bound map[string]bool, builtinSet map[string]bool, out map[string]bool) {
	switch n := e.(type) {
	case *ast.Leaf:
		if n.Tok.Kind == lexer.IDENT {
			addIfFree(n.Tok.Lexeme, bound, builtinSet, out)
		}
	case *ast.Node:
		if n.Op.Kind == lexer.DOT {
			if name, ok := dottedName(n); ok {
				addIfFree(name, bound, builtinSet, out)
				return
			}
		}
		for _, operand := range n.Operands {
			freeIdentifiers(operand, bound, builtinSet, out)
		}
	case *ast.Call:
		if name, ok := dottedName(n.Callee); ok {
			addIfFree(name, bound, builtinSet, out)
		} else {
			freeIdentifiers(n.Callee, bound, builtinSet, out)
		}
		for _, a := range n.Args {
			freeIdentifiers(a, bound, builtinSet, out)
		}
	case *ast.Lambda:
		inner := make(map[string]bool, len(bound)+len(n.Params))
		for k := range bound {
			inner[k] = true
		}
		for _, p := range n.Params {
			inner[p] = true
		}
		freeIdentifiers(n.Body, inner, builtinSet, out)
	}
}

func addIfFree(name string, bound, builtinSet map[string]bool, out map[string]bool) {
	if bound[name] || builtinSet[name] {
		return
	}
	out[name] = true
}

// dottedName flattens a pure identifier `.`-chain (e.g. `a.b.c`) into
// "a.b.c", returning ok=false for anything else (calls, subscripts, or a
// chain rooted in a non-identifier expression).
func dottedName(e ast.Expr) (string, bool) {
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
		left, ok := dottedName(n.Operands[0])
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
