package ast

import (
	"strings"

	"github.com/avscript/avscript/lexer"
)

// Print renders e back into AvScript source text. Every operand is fully
// parenthesized, so Print's output always reparses to a tree equal to the
// original modulo node identity — the invariant spec.md §8 requires of the
// "natural printer". This generalizes the teacher's PrintingVisitor
// (print_visitor.go), which rendered a debug trace rather than reparseable
// source; here the same node-by-node walk produces real AvScript.
func Print(e Expr) string {
	var b strings.Builder
	printExpr(&b, e)
	return b.String()
}

func printExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Leaf:
		printLeaf(b, n)
	case *Node:
		printNode(b, n)
	case *Call:
		printExpr(b, n.Callee)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpr(b, a)
		}
		b.WriteByte(')')
	case *Lambda:
		b.WriteString("lambda (")
		b.WriteString(strings.Join(n.Params, ", "))
		b.WriteString(") -> ")
		printExpr(b, n.Body)
		b.WriteString(" end")
	}
}

func printLeaf(b *strings.Builder, l *Leaf) {
	switch l.Tok.Kind {
	case lexer.STRING:
		b.WriteByte('"')
		b.WriteString(l.Tok.Lexeme)
		b.WriteByte('"')
	case lexer.REGEX:
		b.WriteByte('/')
		b.WriteString(l.Tok.Lexeme)
		b.WriteByte('/')
	default:
		b.WriteString(l.Tok.Lexeme)
	}
}

func printNode(b *strings.Builder, n *Node) {
	switch len(n.Operands) {
	case 1:
		b.WriteByte('(')
		b.WriteString(n.Op.Lexeme)
		b.WriteByte('(')
		printExpr(b, n.Operands[0])
		b.WriteString("))")
	case 2:
		switch n.Op.Kind {
		case lexer.LBRACKET:
			printExpr(b, n.Operands[0])
			b.WriteByte('[')
			printExpr(b, n.Operands[1])
			b.WriteByte(']')
		case lexer.DOT:
			printExpr(b, n.Operands[0])
			b.WriteByte('.')
			if leaf, ok := n.Operands[1].(*Leaf); ok {
				b.WriteString(leaf.Tok.Lexeme)
			} else {
				printExpr(b, n.Operands[1])
			}
		default:
			b.WriteByte('(')
			printExpr(b, n.Operands[0])
			b.WriteByte(' ')
			b.WriteString(string(n.Op.Kind))
			b.WriteByte(' ')
			printExpr(b, n.Operands[1])
			b.WriteByte(')')
		}
	case 3:
		b.WriteByte('(')
		printExpr(b, n.Operands[0])
		b.WriteString(" ? ")
		printExpr(b, n.Operands[1])
		b.WriteString(" : ")
		printExpr(b, n.Operands[2])
		b.WriteByte(')')
	}
}
