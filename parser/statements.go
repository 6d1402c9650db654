package parser

import (
	"github.com/avscript/avscript/ast"
	"github.com/avscript/avscript/lexer"
)

// ParseProgram parses src as a top-level statement list, delegating every
// embedded expression to the Pratt core (spec.md §4.3).
func ParseProgram(src string) ([]ast.Stmt, error) {
	p := New(src)
	stmts := p.parseStmts(lexer.EOF)
	if p.err != nil {
		return nil, p.err
	}
	return stmts, nil
}

// skipSemis consumes any number of leading ';' separators.
func (p *Parser) skipSemis() {
	for p.cur.Kind == lexer.SEMI {
		p.advance()
	}
}

// parseStmts parses statements until the lookahead is `until` (RBRACE for
// a block, EOF for a top-level program), skipping semicolon separators
// between and around statements.
func (p *Parser) parseStmts(until lexer.Kind) []ast.Stmt {
	var stmts []ast.Stmt
	for p.err == nil {
		p.skipSemis()
		if p.cur.Kind == until || p.cur.Kind == lexer.EOF {
			break
		}
		stmts = append(stmts, p.stmt())
	}
	return stmts
}

func (p *Parser) block() []ast.Stmt {
	p.expect(lexer.LBRACE)
	stmts := p.parseStmts(lexer.RBRACE)
	p.expect(lexer.RBRACE)
	return stmts
}

// condition parses an expression that may optionally be wrapped in
// parentheses, per spec.md §4.3's "parentheses around conditions are
// optional" rule for `if` and `while`.
func (p *Parser) condition() ast.Expr {
	if p.cur.Kind == lexer.LPAREN {
		p.advance()
		e := p.expr(0)
		p.expect(lexer.RPAREN)
		return e
	}
	return p.expr(0)
}

func (p *Parser) stmt() ast.Stmt {
	tok := p.cur
	switch tok.Kind {
	case lexer.KW_LET:
		return p.letStmt()
	case lexer.KW_IF:
		return p.ifStmt()
	case lexer.KW_WHILE:
		return p.whileStmt()
	case lexer.KW_FOR:
		return p.forStmt()
	case lexer.KW_FN:
		return p.fnStmt()
	case lexer.KW_TRY:
		return p.tryStmt()
	case lexer.KW_THROW:
		p.advance()
		e := p.expr(0)
		p.optSemi()
		return &ast.Throw{Expr: e, StmtLine: tok.Line}
	case lexer.KW_RETURN:
		p.advance()
		r := &ast.Return{StmtLine: tok.Line}
		if p.cur.Kind != lexer.RBRACE && p.cur.Kind != lexer.SEMI && p.cur.Kind != lexer.EOF {
			r.Expr = p.expr(0)
			r.HasExpr = true
		}
		p.optSemi()
		return r
	case lexer.KW_BREAK:
		p.advance()
		p.optSemi()
		return &ast.Break{StmtLine: tok.Line}
	case lexer.KW_CONTINUE:
		p.advance()
		p.optSemi()
		return &ast.Continue{StmtLine: tok.Line}
	case lexer.LBRACE:
		return &ast.Block{Stmts: p.block(), StmtLine: tok.Line}
	default:
		e := p.expr(0)
		had := false
		if p.cur.Kind == lexer.SEMI {
			had = true
			p.advance()
		}
		return &ast.ExprStmt{Expr: e, HadSemicolon: had, StmtLine: tok.Line}
	}
}

// optSemi consumes a single optional trailing ';' — semicolons are never
// required by the grammar (spec.md §4.3's "Semicolon rule").
func (p *Parser) optSemi() {
	if p.cur.Kind == lexer.SEMI {
		p.advance()
	}
}

func (p *Parser) letStmt() ast.Stmt {
	start := p.cur
	p.advance() // 'let'
	name := p.expect(lexer.IDENT)
	p.expect(lexer.ASSIGN)
	init := p.expr(0)
	p.optSemi()
	return &ast.Let{Name: name.Lexeme, Init: init, StmtLine: start.Line}
}

func (p *Parser) ifStmt() ast.Stmt {
	start := p.cur
	p.advance() // 'if'
	cond := p.condition()
	then := p.block()
	node := &ast.If{Cond: cond, Then: then, StmtLine: start.Line}
	for p.cur.Kind == lexer.KW_ELSIF {
		p.advance()
		c := p.condition()
		b := p.block()
		node.Elsifs = append(node.Elsifs, ast.ElsifClause{Cond: c, Body: b})
	}
	if p.cur.Kind == lexer.KW_ELSE {
		p.advance()
		node.Else = p.block()
		node.HasElse = true
	}
	return node
}

func (p *Parser) whileStmt() ast.Stmt {
	start := p.cur
	p.advance() // 'while'
	cond := p.condition()
	body := p.block()
	return &ast.While{Cond: cond, Body: body, StmtLine: start.Line}
}

// forStmt parses `for (IDENT ,)? IDENT in expr { block }` — the optional
// leading identifier+comma selects the two-name index/item form.
func (p *Parser) forStmt() ast.Stmt {
	start := p.cur
	p.advance() // 'for'
	first := p.expect(lexer.IDENT)
	node := &ast.For{StmtLine: start.Line}
	if p.cur.Kind == lexer.COMMA {
		p.advance()
		second := p.expect(lexer.IDENT)
		node.IndexName = first.Lexeme
		node.HasIndex = true
		node.ItemName = second.Lexeme
	} else {
		node.ItemName = first.Lexeme
	}
	p.expect(lexer.KW_IN)
	node.Iterable = p.expr(0)
	node.Body = p.block()
	return node
}

func (p *Parser) fnStmt() ast.Stmt {
	start := p.cur
	p.advance() // 'fn'
	name := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)
	var params []string
	if p.cur.Kind != lexer.RPAREN {
		for {
			param := p.expect(lexer.IDENT)
			params = append(params, param.Lexeme)
			if p.cur.Kind == lexer.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(lexer.RPAREN)
	body := p.block()
	return &ast.Fn{Name: name.Lexeme, Params: params, Body: body, StmtLine: start.Line}
}

func (p *Parser) tryStmt() ast.Stmt {
	start := p.cur
	p.advance() // 'try'
	node := &ast.Try{TryBody: p.block(), StmtLine: start.Line}
	if p.cur.Kind == lexer.KW_CATCH {
		p.advance()
		p.expect(lexer.LPAREN)
		name := p.expect(lexer.IDENT)
		p.expect(lexer.RPAREN)
		node.CatchName = name.Lexeme
		node.HasCatch = true
		node.CatchBody = p.block()
	}
	if p.cur.Kind == lexer.KW_FINALLY {
		p.advance()
		node.Finally = p.block()
		node.HasFinally = true
	}
	return node
}
