package parser

import "github.com/mus-lang/mus/lexer"

// parseVarDecl := "var" IDENT "=>" IDENT ("<" IDENT ">")? ("=" expression)?
//
// The optional `<T>` suffix is kept in DeclaredType verbatim, e.g.
// "array<integer>"; only one level of `<...>` is accepted.
func (p *Parser) parseVarDecl() Stmt {
	tok := p.advance() // consume 'var'
	nameTok, ok := p.expect(lexer.IDENTIFIER, "after 'var'")
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.FATARROW, "after variable name"); !ok {
		return nil
	}
	typeTok, ok := p.expect(lexer.IDENTIFIER, "as declared type")
	if !ok {
		return nil
	}
	decl := &VarDecl{Tok: tok, Name: nameTok.Lexeme, DeclaredType: typeTok.Lexeme}
	if p.match(lexer.LT) {
		elemTok, _ := p.expect(lexer.IDENTIFIER, "as element type")
		p.expect(lexer.GT, "to close element type")
		decl.DeclaredType += "<" + elemTok.Lexeme + ">"
	}
	if p.match(lexer.ASSIGN) {
		decl.Initializer = p.parseExpression()
	}
	p.consumeStatementEnd()
	return decl
}

// parseStatement := ifStmt | whileStmt | forStmt | returnStmt | block | exprStmt
func (p *Parser) parseStatement() Stmt {
	switch {
	case p.check(lexer.IF):
		return p.parseIfStmt()
	case p.check(lexer.WHILE):
		return p.parseWhileStmt()
	case p.check(lexer.FOR):
		return p.parseForStmt()
	case p.check(lexer.RETURN):
		return p.parseReturnStmt()
	case p.check(lexer.LBRACE):
		return p.parseBlock()
	default:
		return p.parseExpressionStmt()
	}
}

// parseBlock := "{" declaration* "}"
func (p *Parser) parseBlock() *Block {
	tok := p.advance() // consume '{'
	block := &Block{Tok: tok}
	for !p.check(lexer.RBRACE) && !p.atEnd() {
		stmt := p.parseDeclaration()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	p.expect(lexer.RBRACE, "to close block")
	return block
}

// parseIfStmt := "if" "(" expression ")" statement (("elif" "(" expression ")" statement)* ("else" statement))?
//
// `elif` chains desugar into nested If nodes stored in Else, so the
// evaluator only ever needs to know about plain If.
func (p *Parser) parseIfStmt() Stmt {
	tok := p.advance() // consume 'if'
	p.expect(lexer.LPAREN, "after 'if'")
	cond := p.parseExpression()
	p.expect(lexer.RPAREN, "after if condition")
	then := p.parseStatement()
	node := &If{Tok: tok, Cond: cond, Then: then}
	if p.check(lexer.ELIF) {
		elifTok := p.advance()
		p.expect(lexer.LPAREN, "after 'elif'")
		elifCond := p.parseExpression()
		p.expect(lexer.RPAREN, "after elif condition")
		elifThen := p.parseStatement()
		node.Else = p.parseElifChain(elifTok, elifCond, elifThen)
		return node
	}
	if p.match(lexer.ELSE) {
		node.Else = p.parseStatement()
	}
	return node
}

func (p *Parser) parseElifChain(tok lexer.Token, cond Expr, then Stmt) Stmt {
	node := &If{Tok: tok, Cond: cond, Then: then}
	if p.check(lexer.ELIF) {
		elifTok := p.advance()
		p.expect(lexer.LPAREN, "after 'elif'")
		elifCond := p.parseExpression()
		p.expect(lexer.RPAREN, "after elif condition")
		elifThen := p.parseStatement()
		node.Else = p.parseElifChain(elifTok, elifCond, elifThen)
		return node
	}
	if p.match(lexer.ELSE) {
		node.Else = p.parseStatement()
	}
	return node
}

// parseWhileStmt := "while" "(" expression ")" statement
func (p *Parser) parseWhileStmt() Stmt {
	tok := p.advance() // consume 'while'
	p.expect(lexer.LPAREN, "after 'while'")
	cond := p.parseExpression()
	p.expect(lexer.RPAREN, "after while condition")
	body := p.parseStatement()
	return &While{Tok: tok, Cond: cond, Body: body}
}

// parseReturnStmt := "return" expression?
func (p *Parser) parseReturnStmt() Stmt {
	tok := p.advance() // consume 'return'
	node := &Return{Tok: tok}
	if !p.check(lexer.SEMICOLON) && !p.check(lexer.RBRACE) && !p.atEnd() {
		node.Value = p.parseExpression()
	}
	p.consumeStatementEnd()
	return node
}

// parseExpressionStmt := expression
func (p *Parser) parseExpressionStmt() Stmt {
	tok := p.current()
	expr := p.parseExpression()
	if expr == nil {
		p.synchronize()
		return nil
	}
	p.consumeStatementEnd()
	return &ExpressionStmt{Tok: tok, Expr: expr}
}

// consumeStatementEnd swallows an optional trailing ';'. Mus source rarely
// uses semicolons, so they are accepted but never required.
func (p *Parser) consumeStatementEnd() {
	p.match(lexer.SEMICOLON)
}
