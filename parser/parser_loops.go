package parser

import "github.com/mus-lang/mus/lexer"

// parseForStmt implements both `for` grammars:
//
//	for (var i = <init>; <cond>; <incr>) body   -- C-style
//	for (name in iterable) body                 -- for-in
//
// Disambiguation follows the token after the loop variable: a bare
// identifier immediately followed by `in` is for-in; one followed by `=`
// (with or without a leading `var`) is C-style.
func (p *Parser) parseForStmt() Stmt {
	tok := p.advance() // consume 'for'
	p.expect(lexer.LPAREN, "after 'for'")

	if p.check(lexer.VAR) {
		return p.parseCForWithVarInit(tok)
	}

	if p.check(lexer.IDENTIFIER) && p.peekNext().Type == lexer.IN {
		return p.parseForIn(tok)
	}

	return p.parseCForWithAssignInit(tok)
}

// parseCForWithVarInit parses `var name (=> type)? (= expr)? ;`. The type
// annotation is optional here; without one the loop variable is `any`.
func (p *Parser) parseCForWithVarInit(tok lexer.Token) Stmt {
	varTok := p.advance() // consume 'var'
	nameTok, _ := p.expect(lexer.IDENTIFIER, "after 'var'")
	init := &VarDecl{Tok: varTok, Name: nameTok.Lexeme, DeclaredType: "any"}
	if p.match(lexer.FATARROW) {
		typeTok, _ := p.expect(lexer.IDENTIFIER, "as declared type")
		init.DeclaredType = typeTok.Lexeme
	}
	if p.match(lexer.ASSIGN) {
		init.Initializer = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON, "after for-loop initializer")
	return p.finishCFor(tok, init)
}

func (p *Parser) parseCForWithAssignInit(tok lexer.Token) Stmt {
	nameTok, ok := p.expect(lexer.IDENTIFIER, "as loop variable")
	if !ok {
		return nil
	}
	p.expect(lexer.ASSIGN, "in for-loop initializer")
	value := p.parseExpression()
	init := &ExpressionStmt{Tok: nameTok, Expr: &Set{Tok: nameTok, Name: nameTok.Lexeme, Value: value}}
	p.expect(lexer.SEMICOLON, "after for-loop initializer")
	return p.finishCFor(tok, init)
}

func (p *Parser) finishCFor(tok lexer.Token, init Stmt) Stmt {
	var cond Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON, "after for-loop condition")

	var incr Expr
	if !p.check(lexer.RPAREN) {
		incr = p.parseExpression()
	}
	p.expect(lexer.RPAREN, "after for-loop clauses")

	body := p.parseStatement()
	return &For{Tok: tok, Init: init, Cond: cond, Incr: incr, Body: body}
}

func (p *Parser) parseForIn(tok lexer.Token) Stmt {
	nameTok := p.advance() // the loop variable identifier
	p.advance()            // consume 'in'
	iterable := p.parseExpression()
	p.expect(lexer.RPAREN, "after for-in iterable")
	body := p.parseStatement()
	return &ForIn{Tok: tok, IterName: nameTok.Lexeme, Iterable: iterable, Body: body}
}
