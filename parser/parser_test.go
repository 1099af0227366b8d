package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_IntegerLiteral(t *testing.T) {
	p, err := NewFromSource(`12`)
	require.NoError(t, err)
	stmts := p.Parse()
	require.Empty(t, p.Errors)
	require.Len(t, stmts, 1)

	exprStmt, ok := stmts[0].(*ExpressionStmt)
	require.True(t, ok)
	lit, ok := exprStmt.Expr.(*Literal)
	require.True(t, ok)
	assert.Equal(t, LiteralInt, lit.Kind)
	assert.Equal(t, int64(12), lit.Int)
}

func TestParser_BinaryPrecedence(t *testing.T) {
	p, err := NewFromSource(`1 + 2 * 3`)
	require.NoError(t, err)
	stmts := p.Parse()
	require.Empty(t, p.Errors)
	require.Len(t, stmts, 1)

	exprStmt := stmts[0].(*ExpressionStmt)
	add, ok := exprStmt.Expr.(*Binary)
	require.True(t, ok)
	assert.Equal(t, "+", string(add.Op))

	left, ok := add.Left.(*Literal)
	require.True(t, ok)
	assert.Equal(t, int64(1), left.Int)

	mul, ok := add.Right.(*Binary)
	require.True(t, ok)
	assert.Equal(t, "*", string(mul.Op))
}

func TestParser_VarDeclWithDeclaredType(t *testing.T) {
	p, err := NewFromSource(`var x => integer = 5`)
	require.NoError(t, err)
	stmts := p.Parse()
	require.Empty(t, p.Errors)
	require.Len(t, stmts, 1)

	decl, ok := stmts[0].(*VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)
	assert.Equal(t, "integer", decl.DeclaredType)
	lit, ok := decl.Initializer.(*Literal)
	require.True(t, ok)
	assert.Equal(t, int64(5), lit.Int)
}

func TestParser_ClassDeclWithSuperclassAndFields(t *testing.T) {
	src := `
class Animal {
  var name => string = "?"
  fun speak() { out(name) }
}
class Dog extends Animal {
  fun speak() { super.speak() }
}
`
	p, err := NewFromSource(src)
	require.NoError(t, err)
	stmts := p.Parse()
	require.Empty(t, p.Errors)
	require.Len(t, stmts, 2)

	animal, ok := stmts[0].(*ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "Animal", animal.Name)
	assert.Empty(t, animal.SuperclassName)
	require.Len(t, animal.Fields, 1)
	assert.Equal(t, "name", animal.Fields[0].Name)
	require.Len(t, animal.Methods, 1)
	assert.Equal(t, "speak", animal.Methods[0].Name)

	dog, ok := stmts[1].(*ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "Dog", dog.Name)
	assert.Equal(t, "Animal", dog.SuperclassName)
}

func TestParser_IfElifElseDesugarsToNestedIf(t *testing.T) {
	src := `if (x > 0) { out(1) } elif (x < 0) { out(-1) } else { out(0) }`
	p, err := NewFromSource(src)
	require.NoError(t, err)
	stmts := p.Parse()
	require.Empty(t, p.Errors)
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*If)
	require.True(t, ok)
	inner, ok := outer.Else.(*If)
	require.True(t, ok)
	assert.NotNil(t, inner.Cond)
	assert.NotNil(t, inner.Else)
}

func TestParser_CStyleForWithVarInit(t *testing.T) {
	src := `for (var i = 0; i < 3; i = i + 1) { out(i) }`
	p, err := NewFromSource(src)
	require.NoError(t, err)
	stmts := p.Parse()
	require.Empty(t, p.Errors)
	require.Len(t, stmts, 1)

	forStmt, ok := stmts[0].(*For)
	require.True(t, ok)
	_, ok = forStmt.Init.(*VarDecl)
	assert.True(t, ok)
	assert.NotNil(t, forStmt.Cond)
	assert.NotNil(t, forStmt.Incr)
}

func TestParser_ForInOverVariable(t *testing.T) {
	src := `for (item in items) { out(item) }`
	p, err := NewFromSource(src)
	require.NoError(t, err)
	stmts := p.Parse()
	require.Empty(t, p.Errors)
	require.Len(t, stmts, 1)

	forIn, ok := stmts[0].(*ForIn)
	require.True(t, ok)
	assert.Equal(t, "item", forIn.IterName)
}

func TestParser_NewClassCallAndBareClassCallAreEquivalent(t *testing.T) {
	withNew, err := NewFromSource(`new Point(1, 2)`)
	require.NoError(t, err)
	withNewStmts := withNew.Parse()
	require.Empty(t, withNew.Errors)

	bare, err := NewFromSource(`Point(1, 2)`)
	require.NoError(t, err)
	bareStmts := bare.Parse()
	require.Empty(t, bare.Errors)

	withNewCall := withNewStmts[0].(*ExpressionStmt).Expr.(*Call)
	bareCall := bareStmts[0].(*ExpressionStmt).Expr.(*Call)

	withNewCallee := withNewCall.Callee.(*Variable)
	bareCallee := bareCall.Callee.(*Variable)
	assert.Equal(t, withNewCallee.Name, bareCallee.Name)
	assert.Len(t, withNewCall.Args, 2)
	assert.Len(t, bareCall.Args, 2)
}

func TestParser_IndexGetOnVariable(t *testing.T) {
	p, err := NewFromSource(`a[0]`)
	require.NoError(t, err)
	stmts := p.Parse()
	require.Empty(t, p.Errors)

	get, ok := stmts[0].(*ExpressionStmt).Expr.(*Get)
	require.True(t, ok)
	assert.True(t, get.IsIndex)
	obj, ok := get.Object.(*Variable)
	require.True(t, ok)
	assert.Equal(t, "a", obj.Name)
}

func TestParser_UnclosedBlockIsReportedAsError(t *testing.T) {
	p, err := NewFromSource(`fun f() { out(1)`)
	require.NoError(t, err)
	p.Parse()
	assert.NotEmpty(t, p.Errors)
}
