// Package parser implements the Pratt-style expression core (spec.md §4.2)
// and the statement-level script parser built on top of it (spec.md §4.3),
// grounded on go-mix's parser/parser_precedence.go and
// parser/parser_expressions.go but replaced wholesale with the exact
// binding-power table spec.md specifies.
package parser

import (
	"fmt"

	"github.com/avscript/avscript/ast"
	"github.com/avscript/avscript/lexer"
)

// Parser consumes a one-token lookahead from the lexer, the same shape
// go-mix's parser keeps (a `cur` field advanced token-by-token).
type Parser struct {
	lex *lexer.Lexer
	cur lexer.Token
	err error
}

// New creates a Parser over src and primes the first lookahead token.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.advance()
	return p
}

func (p *Parser) advance() {
	if p.err != nil {
		return
	}
	tok, err := p.lex.Next()
	if err != nil {
		p.err = err
		p.cur = lexer.Token{Kind: lexer.EOF, Line: tok.Line}
		return
	}
	p.cur = tok
}

func (p *Parser) fail(msg string) {
	if p.err == nil {
		p.err = &SyntaxError{Token: p.cur, Message: msg}
	}
}

func (p *Parser) expect(k lexer.Kind) lexer.Token {
	tok := p.cur
	if tok.Kind != k {
		p.fail(fmt.Sprintf("expected %s", k))
		return tok
	}
	p.advance()
	return tok
}

// ParseExpression parses a single expression (ubp=0) and returns any error
// encountered, without requiring EOF — used as the reentrant entry point
// string interpolation re-enters at evaluation time (spec.md §4.4, §9).
func ParseExpression(src string) (ast.Expr, error) {
	p := New(src)
	e := p.expr(0)
	if p.err != nil {
		return nil, p.err
	}
	return e, nil
}

// expr is the Pratt core: parse a primary, then repeatedly fold in infix
// operators (binding tighter than ubp) or postfix call/subscript
// applications, exactly per spec.md §4.2's algorithm.
func (p *Parser) expr(ubp int) ast.Expr {
	if p.err != nil {
		return nil
	}
	left := p.primary()
	for p.err == nil {
		bp, ok := infixTable[p.cur.Kind]
		if !ok || bp.left < ubp {
			break
		}
		op := p.cur
		switch {
		case op.Kind == lexer.QUESTION:
			p.advance()
			cons := p.expr(0)
			p.expect(lexer.COLON)
			alt := p.expr(bp.right)
			left = &ast.Node{Op: op, Operands: []ast.Expr{left, cons, alt}}
		case op.Kind == lexer.LPAREN:
			p.advance()
			args := p.parseArgs()
			left = &ast.Call{Callee: left, Args: args, CallLine: op.Line}
		case op.Kind == lexer.LBRACKET:
			p.advance()
			idx := p.expr(0)
			p.expect(lexer.RBRACKET)
			left = &ast.Node{Op: op, Operands: []ast.Expr{left, idx}}
		default:
			p.advance()
			var right ast.Expr
			if op.Kind == lexer.DOT {
				right = p.dotName()
			} else {
				right = p.expr(bp.right)
			}
			left = &ast.Node{Op: op, Operands: []ast.Expr{left, right}}
		}
	}
	return left
}

// dotName parses the identifier on the right of a '.'; the grammar only
// allows a bare name there (spec.md §4.4's property-access/flattened-name
// rules operate over identifier chains).
func (p *Parser) dotName() ast.Expr {
	if p.cur.Kind != lexer.IDENT {
		p.fail("expected identifier after '.'")
		return &ast.Leaf{Tok: p.cur}
	}
	tok := p.cur
	p.advance()
	return &ast.Leaf{Tok: tok}
}

// parseArgs parses a comma-separated, possibly-empty argument list up to
// ')'. A trailing comma is a syntax error (spec.md §4.2 "Calls").
func (p *Parser) parseArgs() []ast.Expr {
	var args []ast.Expr
	if p.cur.Kind == lexer.RPAREN {
		p.advance()
		return args
	}
	for {
		args = append(args, p.expr(0))
		if p.cur.Kind == lexer.COMMA {
			p.advance()
			if p.cur.Kind == lexer.RPAREN {
				p.fail("trailing comma in argument list")
				return args
			}
			continue
		}
		break
	}
	p.expect(lexer.RPAREN)
	return args
}

// primary parses a parenthesized sub-expression, a leaf literal, a prefix
// operator application, or a lambda form (spec.md §4.2 "Primaries").
func (p *Parser) primary() ast.Expr {
	if p.err != nil {
		return nil
	}
	tok := p.cur
	switch tok.Kind {
	case lexer.NUMBER, lexer.STRING, lexer.REGEX, lexer.IDENT,
		lexer.TRUE, lexer.FALSE, lexer.NIL:
		p.advance()
		return &ast.Leaf{Tok: tok}
	case lexer.LPAREN:
		p.advance()
		e := p.expr(0)
		p.expect(lexer.RPAREN)
		return e
	case lexer.MINUS, lexer.NOT, lexer.TILDE:
		p.advance()
		operand := p.expr(prefixRightBP)
		return &ast.Node{Op: tok, Operands: []ast.Expr{operand}}
	case lexer.KW_LAMBDA:
		return p.lambda()
	default:
		p.fail("expected an expression")
		return &ast.Leaf{Tok: tok}
	}
}

// lambda parses `lambda (p1, p2, ...) -> body end`; the parameter list may
// be empty, and a trailing comma is rejected.
func (p *Parser) lambda() ast.Expr {
	start := p.cur
	p.advance() // 'lambda'
	p.expect(lexer.LPAREN)
	var params []string
	if p.cur.Kind != lexer.RPAREN {
		for {
			if p.cur.Kind != lexer.IDENT {
				p.fail("expected parameter name")
				break
			}
			params = append(params, p.cur.Lexeme)
			p.advance()
			if p.cur.Kind == lexer.COMMA {
				p.advance()
				if p.cur.Kind == lexer.RPAREN {
					p.fail("trailing comma in parameter list")
					break
				}
				continue
			}
			break
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.ARROW)
	body := p.expr(0)
	p.expect(lexer.KW_END)
	return &ast.Lambda{Params: params, Body: body, StartLine: start.Line}
}
