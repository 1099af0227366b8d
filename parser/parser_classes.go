package parser

import "github.com/mus-lang/mus/lexer"

// parseClassDecl := "class" IDENT ("extends" IDENT)? "{" (varDecl | funDecl)* "}"
func (p *Parser) parseClassDecl() *ClassDecl {
	tok := p.advance() // consume 'class'
	nameTok, ok := p.expect(lexer.IDENTIFIER, "as class name")
	if !ok {
		return nil
	}
	decl := &ClassDecl{Tok: tok, Name: nameTok.Lexeme}
	if p.match(lexer.EXTENDS) {
		superTok, ok := p.expect(lexer.IDENTIFIER, "after 'extends'")
		if ok {
			decl.SuperclassName = superTok.Lexeme
		}
	}
	p.expect(lexer.LBRACE, "to open class body")
	for !p.check(lexer.RBRACE) && !p.atEnd() {
		switch {
		case p.check(lexer.VAR):
			if field, ok := p.parseVarDecl().(*VarDecl); ok {
				decl.Fields = append(decl.Fields, field)
			}
		case p.check(lexer.FUN):
			if method := p.parseFunDecl(); method != nil {
				decl.Methods = append(decl.Methods, method)
			}
		default:
			p.errorf("expected field or method declaration in class %q, got %s", decl.Name, p.current().Type)
			p.synchronize()
		}
	}
	p.expect(lexer.RBRACE, "to close class body")
	return decl
}
