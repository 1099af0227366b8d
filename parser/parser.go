package parser

import (
	"fmt"

	"github.com/mus-lang/mus/lexer"
)

// Error is a single parse-time diagnostic: an unexpected token, an invalid
// assignment target, or an unclosed block.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("ParserError: %s (line %d, column %d)", e.Message, e.Line, e.Column)
}

// Parser is a recursive-descent parser with panic-mode recovery: a parse
// error is recorded and parsing resumes at the next statement boundary so a
// single run can surface multiple errors.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	Errors  []*Error
}

// New builds a Parser from a pre-tokenized source. Tokenizing happens as a
// discrete first stage: a lexer error aborts before any parsing is
// attempted.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// NewFromSource lexes src in full and, on success, returns a Parser ready to
// run. A lexer error is returned unchanged (it is not a ParserError).
func NewFromSource(src string) (*Parser, error) {
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		return nil, err
	}
	return New(toks), nil
}

func (p *Parser) current() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peekNext() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1] // EOF
}

func (p *Parser) atEnd() bool { return p.current().Type == lexer.EOF }

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.current().Type == t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes the current token if it has type t, else records a parse
// error and returns the zero Token.
func (p *Parser) expect(t lexer.TokenType, context string) (lexer.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.errorf("expected %s %s, got %s", t, context, p.current().Type)
	return lexer.Token{}, false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	tok := p.current()
	p.Errors = append(p.Errors, &Error{Message: fmt.Sprintf(format, args...), Line: tok.Line, Column: tok.Column})
}

// synchronize discards tokens until a `}` is consumed or the next token
// starts a new declaration/statement, per the parser's error-recovery
// policy.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.current().Type == lexer.RBRACE {
			p.advance()
			return
		}
		switch p.current().Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.IF, lexer.WHILE, lexer.FOR, lexer.RETURN:
			return
		}
		p.advance()
	}
}

// Parse runs the full grammar (`program := declaration*`) and returns the
// list of top-level statements. Parsing continues past errors to collect as
// many diagnostics as possible; check p.Errors after calling.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for !p.atEnd() {
		stmt := p.parseDeclaration()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// parseDeclaration := classDecl | funDecl | varDecl | statement
//
// Each branch synchronizes on its own error (panic-mode recovery), so a
// single malformed declaration doesn't prevent reporting errors in the
// rest of the file.
func (p *Parser) parseDeclaration() Stmt {
	errCountBefore := len(p.Errors)
	var stmt Stmt
	switch {
	case p.check(lexer.CLASS):
		stmt = p.parseClassDecl()
	case p.check(lexer.FUN):
		stmt = p.parseFunDecl()
	case p.check(lexer.VAR):
		stmt = p.parseVarDecl()
	default:
		stmt = p.parseStatement()
	}
	if len(p.Errors) > errCountBefore {
		p.synchronize()
		return nil
	}
	return stmt
}
