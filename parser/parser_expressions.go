package parser

import "github.com/mus-lang/mus/lexer"

// parseExpression := assignment
func (p *Parser) parseExpression() Expr {
	return p.parseAssignment()
}

// parseAssignment := logicOr ("=" assignment)?
//
// The left-hand side is parsed as an ordinary expression first; if `=`
// follows, it is rewritten into an assignment target per the grammar's
// assignment target rule. Any other left-hand side is a parse error.
func (p *Parser) parseAssignment() Expr {
	left := p.parseLogicOr()
	if !p.check(lexer.ASSIGN) {
		return left
	}
	eq := p.advance()
	value := p.parseAssignment()

	switch target := left.(type) {
	case *Variable:
		return &Set{Tok: eq, Object: nil, Name: target.Name, Value: value}
	case *Get:
		return &Set{Tok: eq, Object: target.Object, Name: target.Name, Index: target.Index, IsIndex: target.IsIndex, Value: value}
	default:
		p.errorf("invalid assignment target")
		return left
	}
}

// parseLogicOr := logicAnd ("||" logicAnd)*
func (p *Parser) parseLogicOr() Expr {
	left := p.parseLogicAnd()
	for p.check(lexer.OR) {
		tok := p.advance()
		right := p.parseLogicAnd()
		left = &Binary{Tok: tok, Left: left, Op: lexer.OR, Right: right}
	}
	return left
}

// parseLogicAnd := equality ("&&" equality)*
func (p *Parser) parseLogicAnd() Expr {
	left := p.parseEquality()
	for p.check(lexer.AND) {
		tok := p.advance()
		right := p.parseEquality()
		left = &Binary{Tok: tok, Left: left, Op: lexer.AND, Right: right}
	}
	return left
}

// parseEquality := comparison (("==" | "!=") comparison)*
func (p *Parser) parseEquality() Expr {
	left := p.parseComparison()
	for p.check(lexer.EQ) || p.check(lexer.NEQ) {
		tok := p.advance()
		right := p.parseComparison()
		left = &Binary{Tok: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left
}

// parseComparison := term (("<"|"<="|">"|">=") term)*
func (p *Parser) parseComparison() Expr {
	left := p.parseTerm()
	for p.check(lexer.LT) || p.check(lexer.LE) || p.check(lexer.GT) || p.check(lexer.GE) {
		tok := p.advance()
		right := p.parseTerm()
		left = &Binary{Tok: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left
}

// parseTerm := factor (("+"|"-") factor)*
func (p *Parser) parseTerm() Expr {
	left := p.parseFactor()
	for p.check(lexer.PLUS) || p.check(lexer.MINUS) {
		tok := p.advance()
		right := p.parseFactor()
		left = &Binary{Tok: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left
}

// parseFactor := unary (("*"|"/"|"%") unary)*
func (p *Parser) parseFactor() Expr {
	left := p.parseUnary()
	for p.check(lexer.STAR) || p.check(lexer.SLASH) || p.check(lexer.PERCENT) {
		tok := p.advance()
		right := p.parseUnary()
		left = &Binary{Tok: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left
}

// parseUnary := ("!"|"-") unary | call
func (p *Parser) parseUnary() Expr {
	if p.check(lexer.NOT) || p.check(lexer.MINUS) {
		tok := p.advance()
		right := p.parseUnary()
		return &Unary{Tok: tok, Op: tok.Type, Right: right}
	}
	return p.parseCall()
}

// parseCall := primary ( "(" args? ")" | "." IDENT | "[" expression "]" )*
func (p *Parser) parseCall() Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(lexer.LPAREN):
			expr = p.finishCall(expr)
		case p.check(lexer.DOT):
			tok := p.advance()
			nameTok, ok := p.expect(lexer.IDENTIFIER, "after '.'")
			if !ok {
				return expr
			}
			expr = &Get{Tok: tok, Object: expr, Name: nameTok.Lexeme}
		case p.check(lexer.LBRACKET):
			tok := p.advance()
			index := p.parseExpression()
			p.expect(lexer.RBRACKET, "to close index expression")
			expr = &Get{Tok: tok, Object: expr, Index: index, IsIndex: true}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	tok := p.advance() // consume '('
	var args []Expr
	if !p.check(lexer.RPAREN) {
		args = append(args, p.parseExpression())
		for p.match(lexer.COMMA) {
			args = append(args, p.parseExpression())
		}
	}
	p.expect(lexer.RPAREN, "to close call arguments")
	return &Call{Tok: tok, Callee: callee, Args: args}
}

// parsePrimary := INT | STRING | BOOL | "this" | "super" "." IDENT
//
//	| IDENT | "(" expression ")" | arrayLit | "new" IDENT "(" args? ")"
func (p *Parser) parsePrimary() Expr {
	tok := p.current()
	switch tok.Type {
	case lexer.INTEGER:
		p.advance()
		return &Literal{Tok: tok, Kind: LiteralInt, Int: tok.Literal.Int}
	case lexer.STRING:
		p.advance()
		return &Literal{Tok: tok, Kind: LiteralString, Str: tok.Literal.Str}
	case lexer.BOOLEAN:
		p.advance()
		return &Literal{Tok: tok, Kind: LiteralBool, Bool: tok.Literal.Bool}
	case lexer.THIS:
		p.advance()
		return &This{Tok: tok}
	case lexer.SUPER:
		p.advance()
		p.expect(lexer.DOT, "after 'super'")
		nameTok, ok := p.expect(lexer.IDENTIFIER, "as super method name")
		if !ok {
			return nil
		}
		return &Super{Tok: tok, Method: nameTok.Lexeme}
	case lexer.IDENTIFIER:
		p.advance()
		if tok.Lexeme == "null" { // the null literal
			return &Literal{Tok: tok, Kind: LiteralNull}
		}
		return &Variable{Tok: tok, Name: tok.Lexeme}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN, "to close grouping")
		return expr
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.NEW:
		p.advance()
		nameTok, ok := p.expect(lexer.IDENTIFIER, "after 'new'")
		if !ok {
			return nil
		}
		callee := &Variable{Tok: nameTok, Name: nameTok.Lexeme}
		return p.finishCall(callee)
	default:
		p.errorf("unexpected token %s in expression", tok.Type)
		p.advance()
		return nil
	}
}

// parseArrayLit := "[" (expression ("," expression)*)? "]"
func (p *Parser) parseArrayLiteral() Expr {
	tok := p.advance() // consume '['
	node := &Literal{Tok: tok, Kind: LiteralArray}
	if !p.check(lexer.RBRACKET) {
		node.Elements = append(node.Elements, p.parseExpression())
		for p.match(lexer.COMMA) {
			node.Elements = append(node.Elements, p.parseExpression())
		}
	}
	p.expect(lexer.RBRACKET, "to close array literal")
	return node
}
