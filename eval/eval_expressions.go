package eval

import (
	"fmt"

	"github.com/mus-lang/mus/lexer"
	"github.com/mus-lang/mus/muserr"
	"github.com/mus-lang/mus/parser"
	"github.com/mus-lang/mus/values"
)

// evalExpr evaluates a single expression node to a value. Expressions never
// produce a returning signal themselves; only Return does, and only at the
// statement level.
func (ev *Evaluator) evalExpr(node parser.Expr, env values.Environment) (values.Value, error) {
	switch n := node.(type) {
	case *parser.Literal:
		return ev.evalLiteral(n, env)
	case *parser.Variable:
		return ev.evalVariable(n, env)
	case *parser.This:
		v, ok := env.GetVariable("this")
		if !ok {
			return nil, &muserr.NameError{Message: "'this' used outside a method", Line: n.Tok.Line, Column: n.Tok.Column}
		}
		return v, nil
	case *parser.Super:
		return ev.evalSuper(n, env)
	case *parser.Unary:
		return ev.evalUnary(n, env)
	case *parser.Binary:
		return ev.evalBinary(n, env)
	case *parser.Call:
		return ev.evalCall(n, env)
	case *parser.Get:
		return ev.evalGet(n, env)
	case *parser.Set:
		return ev.evalSet(n, env)
	default:
		return nil, &muserr.RuntimeError{Message: fmt.Sprintf("unhandled expression node %T", node)}
	}
}

func (ev *Evaluator) evalLiteral(n *parser.Literal, env values.Environment) (values.Value, error) {
	switch n.Kind {
	case parser.LiteralInt:
		return values.Integer(n.Int), nil
	case parser.LiteralString:
		return values.String(n.Str), nil
	case parser.LiteralBool:
		return values.Boolean(n.Bool), nil
	case parser.LiteralNull:
		return values.NullValue, nil
	case parser.LiteralArray:
		elements := make([]values.Value, len(n.Elements))
		for i, e := range n.Elements {
			v, err := ev.evalExpr(e, env)
			if err != nil {
				return nil, err
			}
			elements[i] = v
		}
		return &values.Array{Elements: elements}, nil
	default:
		return nil, &muserr.RuntimeError{Message: "unknown literal kind", Line: n.Tok.Line, Column: n.Tok.Column}
	}
}

func (ev *Evaluator) evalVariable(n *parser.Variable, env values.Environment) (values.Value, error) {
	if v, ok := env.GetVariable(n.Name); ok {
		return v, nil
	}
	if fn, ok := env.GetFunction(n.Name); ok {
		return fn, nil
	}
	if cls, ok := env.GetClass(n.Name); ok {
		return cls, nil
	}
	return nil, &muserr.NameError{Message: fmt.Sprintf("undefined name %q", n.Name), Line: n.Tok.Line, Column: n.Tok.Column}
}

// evalSuper resolves `super.method` against the superclass's method table,
// bound to the current `this`, not the instance's dynamic class.
func (ev *Evaluator) evalSuper(n *parser.Super, env values.Environment) (values.Value, error) {
	thisVal, ok := env.GetVariable("this")
	if !ok {
		return nil, &muserr.NameError{Message: "'super' used outside a method", Line: n.Tok.Line, Column: n.Tok.Column}
	}
	superVal, ok := env.GetVariable("super")
	if !ok {
		return nil, &muserr.NameError{Message: "'super' used in a class with no superclass", Line: n.Tok.Line, Column: n.Tok.Column}
	}
	super, ok := superVal.(*values.Class)
	if !ok {
		return nil, &muserr.RuntimeError{Message: "'super' did not resolve to a class", Line: n.Tok.Line, Column: n.Tok.Column}
	}
	instance, ok := thisVal.(*values.Instance)
	if !ok {
		return nil, &muserr.RuntimeError{Message: "'this' did not resolve to an instance", Line: n.Tok.Line, Column: n.Tok.Column}
	}
	method, ok := super.ResolveMethod(n.Method)
	if !ok {
		return nil, &muserr.NameError{Message: fmt.Sprintf("method %q not found on superclass %q", n.Method, super.Name), Line: n.Tok.Line, Column: n.Tok.Column}
	}
	return method.Bind(instance), nil
}

func (ev *Evaluator) evalUnary(n *parser.Unary, env values.Environment) (values.Value, error) {
	right, err := ev.evalExpr(n.Right, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case lexer.MINUS:
		i, ok := right.(values.Integer)
		if !ok {
			return nil, &muserr.TypeError{Message: fmt.Sprintf("unary '-' requires a numeric operand, got %s", right.Kind()), Line: n.Tok.Line, Column: n.Tok.Column}
		}
		return -i, nil
	case lexer.NOT:
		return values.Boolean(!values.Truthy(right)), nil
	default:
		return nil, &muserr.RuntimeError{Message: fmt.Sprintf("unknown unary operator %s", n.Op), Line: n.Tok.Line, Column: n.Tok.Column}
	}
}

func (ev *Evaluator) evalBinary(n *parser.Binary, env values.Environment) (values.Value, error) {
	// && and || short-circuit: the right operand is only evaluated when it
	// can change the result.
	if n.Op == lexer.AND {
		left, err := ev.evalExpr(n.Left, env)
		if err != nil {
			return nil, err
		}
		if !values.Truthy(left) {
			return values.Boolean(false), nil
		}
		right, err := ev.evalExpr(n.Right, env)
		if err != nil {
			return nil, err
		}
		return values.Boolean(values.Truthy(right)), nil
	}
	if n.Op == lexer.OR {
		left, err := ev.evalExpr(n.Left, env)
		if err != nil {
			return nil, err
		}
		if values.Truthy(left) {
			return values.Boolean(true), nil
		}
		right, err := ev.evalExpr(n.Right, env)
		if err != nil {
			return nil, err
		}
		return values.Boolean(values.Truthy(right)), nil
	}

	left, err := ev.evalExpr(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpr(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case lexer.PLUS:
		return evalPlus(left, right, n)
	case lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return evalArith(n.Op, left, right, n)
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		return evalCompare(n.Op, left, right, n)
	case lexer.EQ:
		return values.Boolean(valuesEqual(left, right)), nil
	case lexer.NEQ:
		return values.Boolean(!valuesEqual(left, right)), nil
	default:
		return nil, &muserr.RuntimeError{Message: fmt.Sprintf("unknown binary operator %s", n.Op), Line: n.Tok.Line, Column: n.Tok.Column}
	}
}

// evalPlus implements numeric addition or string concatenation: if either
// operand is a string, both sides are stringified and joined.
func evalPlus(left, right values.Value, n *parser.Binary) (values.Value, error) {
	li, lok := left.(values.Integer)
	ri, rok := right.(values.Integer)
	if lok && rok {
		return li + ri, nil
	}
	_, lstr := left.(values.String)
	_, rstr := right.(values.String)
	if lstr || rstr {
		return values.String(left.String() + right.String()), nil
	}
	return nil, &muserr.TypeError{Message: fmt.Sprintf("'+' requires numeric or string operands, got %s and %s", left.Kind(), right.Kind()), Line: n.Tok.Line, Column: n.Tok.Column}
}

func evalArith(op lexer.TokenType, left, right values.Value, n *parser.Binary) (values.Value, error) {
	li, lok := left.(values.Integer)
	ri, rok := right.(values.Integer)
	if !lok || !rok {
		return nil, &muserr.TypeError{Message: fmt.Sprintf("'%s' requires numeric operands, got %s and %s", op, left.Kind(), right.Kind()), Line: n.Tok.Line, Column: n.Tok.Column}
	}
	switch op {
	case lexer.MINUS:
		return li - ri, nil
	case lexer.STAR:
		return li * ri, nil
	case lexer.SLASH:
		if ri == 0 {
			return nil, &muserr.RuntimeError{Message: "division by zero", Line: n.Tok.Line, Column: n.Tok.Column}
		}
		return li / ri, nil
	case lexer.PERCENT:
		if ri == 0 {
			return nil, &muserr.RuntimeError{Message: "modulo by zero", Line: n.Tok.Line, Column: n.Tok.Column}
		}
		return li % ri, nil
	default:
		return nil, &muserr.RuntimeError{Message: "unreachable arithmetic operator", Line: n.Tok.Line, Column: n.Tok.Column}
	}
}

func evalCompare(op lexer.TokenType, left, right values.Value, n *parser.Binary) (values.Value, error) {
	li, lok := left.(values.Integer)
	ri, rok := right.(values.Integer)
	if !lok || !rok {
		return nil, &muserr.TypeError{Message: fmt.Sprintf("'%s' requires numeric operands, got %s and %s", op, left.Kind(), right.Kind()), Line: n.Tok.Line, Column: n.Tok.Column}
	}
	switch op {
	case lexer.LT:
		return values.Boolean(li < ri), nil
	case lexer.LE:
		return values.Boolean(li <= ri), nil
	case lexer.GT:
		return values.Boolean(li > ri), nil
	case lexer.GE:
		return values.Boolean(li >= ri), nil
	default:
		return nil, &muserr.RuntimeError{Message: "unreachable comparison operator"}
	}
}

// valuesEqual implements structural equality: null equals only null;
// values of different kinds are never equal; same-kind values compare by
// their underlying Go equality (pointer identity for instances/arrays).
func valuesEqual(left, right values.Value) bool {
	_, lNull := left.(values.Null)
	_, rNull := right.(values.Null)
	if lNull || rNull {
		return lNull && rNull
	}
	if left.Kind() != right.Kind() {
		return false
	}
	switch l := left.(type) {
	case values.Integer:
		return l == right.(values.Integer)
	case values.String:
		return l == right.(values.String)
	case values.Boolean:
		return l == right.(values.Boolean)
	case *values.Array:
		return l == right.(*values.Array)
	case *values.Instance:
		return l == right.(*values.Instance)
	case *values.Function:
		return l == right.(*values.Function)
	case *values.Class:
		return l == right.(*values.Class)
	default:
		return false
	}
}
