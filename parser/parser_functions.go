package parser

import "github.com/mus-lang/mus/lexer"

// parseFunDecl := "fun" IDENT "(" params? ")" "{" declaration* "}"
func (p *Parser) parseFunDecl() *FunctionDecl {
	tok := p.advance() // consume 'fun'
	nameTok, ok := p.expect(lexer.IDENTIFIER, "as function name")
	if !ok {
		return nil
	}
	params := p.parseParams()
	body := p.parseBlock()
	return &FunctionDecl{Tok: tok, Name: nameTok.Lexeme, Params: params, Body: body.Stmts}
}

// parseParams := "(" (param ("," param)*)? ")"
// param       := IDENT "=>" IDENT
func (p *Parser) parseParams() []Param {
	p.expect(lexer.LPAREN, "to open parameter list")
	var params []Param
	if !p.check(lexer.RPAREN) {
		params = append(params, p.parseParam())
		for p.match(lexer.COMMA) {
			params = append(params, p.parseParam())
		}
	}
	p.expect(lexer.RPAREN, "to close parameter list")
	return params
}

func (p *Parser) parseParam() Param {
	nameTok, ok := p.expect(lexer.IDENTIFIER, "as parameter name")
	if !ok {
		return Param{}
	}
	p.expect(lexer.FATARROW, "after parameter name")
	typeTok, ok := p.expect(lexer.IDENTIFIER, "as parameter type")
	if !ok {
		return Param{Name: nameTok.Lexeme}
	}
	return Param{Name: nameTok.Lexeme, Type: typeTok.Lexeme}
}
