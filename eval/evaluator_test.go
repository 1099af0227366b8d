package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mus-lang/mus/muserr"
	"github.com/mus-lang/mus/parser"
)

// run lexes, parses, and evaluates src, returning stdout and any error.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	p, err := parser.NewFromSource(src)
	require.NoError(t, err)
	stmts := p.Parse()
	require.Empty(t, p.Errors, "parse errors: %v", p.Errors)

	var out, errOut bytes.Buffer
	ev := New(&out, &errOut)
	runErr := ev.Run(stmts)
	return out.String(), runErr
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestEvaluator_Hello(t *testing.T) {
	out, err := run(t, `var greeting => string = "Hello, World!" out(greeting)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello, World!"}, lines(out))
}

func TestEvaluator_ArithmeticAndPrecedence(t *testing.T) {
	out, err := run(t, `out(1 + 2 * 3) out(10 % 3)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "1"}, lines(out))
}

func TestEvaluator_ClosureCounter(t *testing.T) {
	out, err := run(t, `
fun make() { var n => integer = 0
  fun step() { n = n + 1  return n } return step }
var s => any = make()  out(s()) out(s()) out(s())
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, lines(out))
}

func TestEvaluator_ClassInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
class A { fun hi() { out("A") } }
class B extends A { fun hi() { super.hi() out("B") } }
var b => any = new B()  b.hi()
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, lines(out))
}

func TestEvaluator_ForInOverArrayLiteral(t *testing.T) {
	out, err := run(t, `for (x in [10,20,30]) { out(x) }`)
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "20", "30"}, lines(out))
}

func TestEvaluator_CStyleForWithEarlyReturn(t *testing.T) {
	out, err := run(t, `
fun first_over(limit => integer) {
  for (var i = 0; i < 10; i = i + 1) { if (i > limit) { return i } }
  return -1
}
out(first_over(3))
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, lines(out))
}

func TestEvaluator_DivisionByZero(t *testing.T) {
	_, err := run(t, `out(1 / 0)`)
	require.Error(t, err)
	assert.IsType(t, &muserr.RuntimeError{}, err)
}

func TestEvaluator_ModuloByZero(t *testing.T) {
	_, err := run(t, `out(1 % 0)`)
	require.Error(t, err)
	assert.IsType(t, &muserr.RuntimeError{}, err)
}

func TestEvaluator_ArrayIndexAtLengthIsOutOfBounds(t *testing.T) {
	_, err := run(t, `var a => array<integer> = [1,2,3] out(a[3])`)
	require.Error(t, err)
	assert.IsType(t, &muserr.RuntimeError{}, err)
}

func TestEvaluator_NegativeArrayIndex(t *testing.T) {
	_, err := run(t, `var a => array<integer> = [1,2,3] out(a[-1])`)
	require.Error(t, err)
	assert.IsType(t, &muserr.RuntimeError{}, err)
}

func TestEvaluator_ThisOutsideMethodIsNameError(t *testing.T) {
	_, err := run(t, `out(this)`)
	require.Error(t, err)
	assert.IsType(t, &muserr.NameError{}, err)
}

func TestEvaluator_UndefinedVariableIsNameError(t *testing.T) {
	_, err := run(t, `out(missing)`)
	require.Error(t, err)
	assert.IsType(t, &muserr.NameError{}, err)
}

func TestEvaluator_DeclaredTypeMismatchIsTypeError(t *testing.T) {
	_, err := run(t, `var x => integer = "not a number"`)
	require.Error(t, err)
	assert.IsType(t, &muserr.TypeError{}, err)
}

func TestEvaluator_StringConcatenationWithPlus(t *testing.T) {
	out, err := run(t, `var x => string = "a" + "b" out(x) out("n=" + 1)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "n=1"}, lines(out))
}

func TestEvaluator_ArrayPushAndPop(t *testing.T) {
	out, err := run(t, `
var a => array<integer> = []
a.push(1)
a.push(2)
out(length(a))
out(a.pop())
out(length(a))
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "2", "1"}, lines(out))
}

func TestEvaluator_PushTypeMismatchIsTypeError(t *testing.T) {
	_, err := run(t, `
var a => array<integer> = [1]
a.push("oops")
`)
	require.Error(t, err)
	assert.IsType(t, &muserr.TypeError{}, err)
}

func TestEvaluator_PopFromEmptyArrayIsRuntimeError(t *testing.T) {
	_, err := run(t, `
var a => array<integer> = []
a.pop()
`)
	require.Error(t, err)
	assert.IsType(t, &muserr.RuntimeError{}, err)
}

func TestEvaluator_BlockScopeIsReleasedOnExit(t *testing.T) {
	_, err := run(t, `
{ var temp => integer = 1 }
out(temp)
`)
	require.Error(t, err)
	assert.IsType(t, &muserr.NameError{}, err)
}

func TestEvaluator_TruthinessMatchesLogicalNegation(t *testing.T) {
	out, err := run(t, `
out(!!0)
out(!!"")
out(!![])
out(!!null)
out(!!false)
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"true", "true", "true", "false", "false"}, lines(out))
}

func TestEvaluator_MethodBindingIdempotence(t *testing.T) {
	out, err := run(t, `
class Counter {
  var n => integer = 0
  fun bump() { this.n = this.n + 1  return this.n }
}
var c => any = new Counter()
var bumpFn => any = c.bump
out(bumpFn())
out(c.bump())
out(bumpFn())
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, lines(out))
}

func TestEvaluator_SuperWithoutSuperclassIsNameError(t *testing.T) {
	_, err := run(t, `
class A { fun hi() { super.hi() } }
new A().hi()
`)
	require.Error(t, err)
	assert.IsType(t, &muserr.NameError{}, err)
}
