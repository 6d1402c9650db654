// Package ast holds the expression and statement trees shared by the
// parser, interpreter, pending-execution engine, and static analyzer
// (spec.md §3). Both trees are modeled as small closed sets of Go types
// dispatched with a type switch — the "closed sum type with an exhaustive
// match" spec.md's Design Notes call for, generalizing the teacher's
// Visitor-interface AST (parser/node.go) into a shape three independent
// walkers can share without each having to implement every Visit method.
package ast

import "github.com/avscript/avscript/lexer"

// Expr is implemented by every expression-tree node: Leaf, Node, Call, Lambda.
type Expr interface {
	exprNode()
	Line() int
}

// Leaf is a terminal literal or identifier reference.
type Leaf struct {
	Tok lexer.Token
}

func (*Leaf) exprNode()    {}
func (l *Leaf) Line() int  { return l.Tok.Line }

// Node is a unary, binary, or ternary operator application. A subscript
// a[b] is a binary Node whose Op is the '[' token; a ternary a?b:c is a
// three-operand Node whose Op is '?'.
type Node struct {
	Op       lexer.Token
	Operands []Expr
}

func (*Node) exprNode()   {}
func (n *Node) Line() int { return n.Op.Line }

// Call is function application; Callee is itself an expression so that
// chains like obj.method()() compose.
type Call struct {
	Callee   Expr
	Args     []Expr
	CallLine int
}

func (*Call) exprNode()   {}
func (c *Call) Line() int { return c.CallLine }

// Lambda is an anonymous function with an ordered parameter list and a
// single expression body.
type Lambda struct {
	Params    []string
	Body      Expr
	StartLine int
}

func (*Lambda) exprNode()   {}
func (l *Lambda) Line() int { return l.StartLine }
