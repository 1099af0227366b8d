package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenTypes tokenizes src and returns just the TokenType sequence
// (EOF stripped), so test tables stay focused on shape, not position.
func tokenTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	l := New(src)
	toks, err := l.Tokenize()
	require.NoError(t, err)
	var types []TokenType
	for _, tok := range toks {
		if tok.Type == EOF {
			continue
		}
		types = append(types, tok.Type)
	}
	return types
}

func TestLexer_Operators(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"123 + 2 - 12", []TokenType{INTEGER, PLUS, INTEGER, MINUS, INTEGER}},
		{"== != <= >= < >", []TokenType{EQ, NEQ, LE, GE, LT, GT}},
		{"&& || !", []TokenType{AND, OR, NOT}},
		{"( ) { } [ ] , . ; =>", []TokenType{LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, DOT, SEMICOLON, FATARROW}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tokenTypes(t, tt.input), tt.input)
	}
}

func TestLexer_KeywordsAndIdentifiers(t *testing.T) {
	types := tokenTypes(t, "class fun var if else elif while for in return this super extends new foo true false")
	want := []TokenType{CLASS, FUN, VAR, IF, ELSE, ELIF, WHILE, FOR, IN, RETURN, THIS, SUPER, EXTENDS, NEW, IDENTIFIER, BOOLEAN, BOOLEAN}
	assert.Equal(t, want, types)
}

func TestLexer_StringEscapes(t *testing.T) {
	l := New(`"a\nb\t\"c\\d"`)
	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, STRING, tok.Type)
	assert.Equal(t, "a\nb\t\"c\\d", tok.Literal.Str)
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	_, err := l.NextToken()
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Line)
}

func TestLexer_Comments(t *testing.T) {
	types := tokenTypes(t, "1 -- a comment\n+ 2 // another\n* 3")
	assert.Equal(t, []TokenType{INTEGER, PLUS, INTEGER, STAR, INTEGER}, types)
}

func TestLexer_FractionalLiteralTruncates(t *testing.T) {
	l := New("3.99")
	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, INTEGER, tok.Type)
	assert.Equal(t, int64(3), tok.Literal.Int)
}

func TestLexer_LineColumnTracking(t *testing.T) {
	l := New("var x\n  = 1")
	var toks []Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		if tok.Type == EOF {
			break
		}
		toks = append(toks, tok)
	}
	require.Len(t, toks, 4) // var, x, =, 1
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[2].Line)
	assert.Equal(t, 3, toks[2].Column)
}

func TestLexer_UnknownCharacter(t *testing.T) {
	l := New("@")
	_, err := l.NextToken()
	require.Error(t, err)
}
